package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/x/asset"
)

// flAddress returns a value that is being initialized with given default
// value and optionally overwritten by a command line argument if provided.
// This function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *bazaar.Address {
	var a flagAddress
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return (*bazaar.Address)(&a)
}

type flagAddress bazaar.Address

func (a flagAddress) String() string {
	if len(a) == 0 {
		return ""
	}
	return bazaar.Address(a).String()
}

func (a *flagAddress) Set(raw string) error {
	addr, err := bazaar.ParseAddress(raw)
	if err != nil {
		return err
	}
	if err := addr.Validate(); err != nil {
		return err
	}
	*a = flagAddress(addr)
	return nil
}

// flCoin returns a coin value initialized with given default value and
// optionally overwritten by a command line argument.
// If given value cannot be deserialized to required type, process is
// terminated.
func flCoin(fl *flag.FlagSet, name, defaultVal, usage string) *coin.Coin {
	var c flagCoin
	if defaultVal != "" {
		if err := c.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q coin flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&c, name, usage)
	return (*coin.Coin)(&c)
}

type flagCoin coin.Coin

func (c flagCoin) String() string {
	return coin.Coin(c).String()
}

func (c *flagCoin) Set(raw string) error {
	parsed, err := coin.ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = flagCoin(parsed)
	return nil
}

// flAssetKey returns an asset key given in the "<registry>/<hex id>"
// format.
func flAssetKey(fl *flag.FlagSet, name, usage string) *asset.Key {
	var k flagAssetKey
	fl.Var(&k, name, usage)
	return (*asset.Key)(&k)
}

type flagAssetKey asset.Key

func (k flagAssetKey) String() string {
	if len(k.Registry) == 0 {
		return ""
	}
	return asset.Key(k).String()
}

func (k *flagAssetKey) Set(raw string) error {
	key, err := asset.ParseKey(raw)
	if err != nil {
		return err
	}
	*k = flagAssetKey(key)
	return nil
}

// flHex returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided.
// If given value cannot be deserialized to required type, process is
// terminated.
func flHex(fl *flag.FlagSet, name, defaultVal, usage string) *[]byte {
	var b flagbyte
	if defaultVal != "" {
		if err := b.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q hex encoded flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&b, name, usage)
	return (*[]byte)(&b)
}

type flagbyte []byte

func (b flagbyte) String() string {
	return hex.EncodeToString(b)
}

func (b *flagbyte) Set(raw string) error {
	val, err := hex.DecodeString(raw)
	if err != nil {
		return err
	}
	*b = val
	return nil
}
