package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/cmd/bazaard/client"
	"github.com/iov-one/bazaar/x/asset"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/market"
	"github.com/iov-one/bazaar/x/sigs"
)

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Execute a ABCI query and print JSON encoded result.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTmAddr(),
			"Tendermint node address. You can use BAZAARCLI_TM_ADDR environment variable to set it.")
		pathFl        = fl.String("path", "", "Path to be queried. Must be one of the supported.")
		dataFl        = fl.String("data", "", "Individual query data. Use an address for accounts and indexes, <registry>/<hex id> for assets.")
		prefixQueryFl = fl.Bool("prefix", false, "If true, use prefix queries instead of the exact match with provided data.")
	)
	fl.Parse(args)

	conf, ok := queries[*pathFl]
	if !ok {
		return fmt.Errorf("available query paths:\n\t- %s", strings.Join(queryPaths(), "\n\t- "))
	}

	var data []byte
	if len(*dataFl) != 0 {
		var err error
		if data, err = conf.encID(*dataFl); err != nil {
			return fmt.Errorf("can not encode data: %s", err)
		}
	}
	queryPath := *pathFl
	if *prefixQueryFl || *dataFl == "" {
		queryPath += "?" + bazaar.PrefixQueryMod
	}

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	resp, err := c.AbciQuery(queryPath, data)
	if err != nil {
		return fmt.Errorf("failed to run query: %s", err)
	}
	result, err := decodeModels(conf.newObj, conf.decKey, resp.Models)
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}

type keyval struct {
	Key   string
	Value bazaar.Persistent
}

func decodeModels(newObj func() bazaar.Persistent, decKey func([]byte) (string, error), models []bazaar.Model) ([]keyval, error) {
	result := make([]keyval, 0, len(models))
	for i, m := range models {
		obj := newObj()
		if err := obj.Unmarshal(m.Value); err != nil {
			return nil, fmt.Errorf("failed to unmarshal model %d: %s", i, err)
		}
		key, err := decKey(m.Key)
		if err != nil {
			return nil, fmt.Errorf("cannot decode %x key: %s", m.Key, err)
		}
		result = append(result, keyval{Key: key, Value: obj})
	}
	return result, nil
}

func queryPaths() []string {
	paths := make([]string, 0, len(queries))
	for p := range queries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// queries contains a mapping of query path to that query specifics. Each
// query returns a custom model type and may use different ID encoding.
var queries = map[string]struct {
	// newObj returns a new instance of the model that the result of the
	// ABCI query should be extracted into.
	newObj func() bazaar.Persistent
	// decKey is used to decode key value returned by the ABCI query and
	// transform it into human readable form.
	decKey func([]byte) (string, error)
	// encID is used to parse input format of the ID and encode it into
	// form that will be passed to the ABCI query. The format can differ
	// from decKey if a secondary index is used for matching.
	encID func(string) ([]byte, error)
}{
	"/wallets": {
		newObj: func() bazaar.Persistent { return &cash.Wallet{} },
		decKey: addressKey,
		encID:  addressID,
	},
	"/auth": {
		newObj: func() bazaar.Persistent { return &sigs.UserData{} },
		decKey: addressKey,
		encID:  addressID,
	},
	"/collections": {
		newObj: func() bazaar.Persistent { return &asset.Collection{} },
		decKey: addressKey,
		encID:  addressID,
	},
	"/collections/owner": {
		newObj: func() bazaar.Persistent { return &asset.Collection{} },
		decKey: addressKey,
		encID:  addressID,
	},
	"/tokens": {
		newObj: func() bazaar.Persistent { return &asset.Token{} },
		decKey: assetKey,
		encID:  assetID,
	},
	"/tokens/owner": {
		newObj: func() bazaar.Persistent { return &asset.Token{} },
		decKey: assetKey,
		encID:  addressID,
	},
	"/listings": {
		newObj: func() bazaar.Persistent { return &market.Listing{} },
		decKey: assetKey,
		encID:  assetID,
	},
	"/listings/seller": {
		newObj: func() bazaar.Persistent { return &market.Listing{} },
		decKey: assetKey,
		encID:  addressID,
	},
	"/proceeds": {
		newObj: func() bazaar.Persistent { return &market.Proceeds{} },
		decKey: addressKey,
		encID:  addressID,
	},
}

func addressKey(raw []byte) (string, error) {
	return bazaar.Address(raw).String(), nil
}

func addressID(s string) ([]byte, error) {
	return bazaar.ParseAddress(s)
}

func assetKey(raw []byte) (string, error) {
	key, err := asset.ParseKeyBytes(raw)
	if err != nil {
		return "", err
	}
	return key.String(), nil
}

func assetID(s string) ([]byte, error) {
	key, err := asset.ParseKey(s)
	if err != nil {
		return nil, err
	}
	return key.Bytes(), nil
}
