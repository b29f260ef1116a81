package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

func TestSaveLoad(t *testing.T) {
	owner := bazaartest.NewAddress()

	cases := map[string]struct {
		Conf        *myconfig
		WantSaveErr *errors.Error
	}{
		"complete configuration": {
			Conf: &myconfig{Owner: owner, Num: 852151421, Str: "foobar", Cn: coin.NewCoin(51, "IOV")},
		},
		"invalid address cannot be saved": {
			Conf:        &myconfig{Owner: bazaar.Address("too short"), Cn: coin.NewCoin(1, "IOV")},
			WantSaveErr: errors.ErrInput,
		},
		"invalid coin cannot be saved": {
			Conf:        &myconfig{Owner: owner, Cn: coin.Coin{}},
			WantSaveErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.IsErr(t, tc.WantSaveErr, Save(db, "mypkg", tc.Conf))
			if tc.WantSaveErr != nil {
				return
			}
			var got myconfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var got myconfig
	assert.IsErr(t, errors.ErrNotFound, Load(store.MemStore(), "mypkg", &got))
}

func TestInitConfig(t *testing.T) {
	owner := bazaartest.NewAddress()
	conf, err := json.Marshal(map[string]interface{}{
		"mypkg": &myconfig{Owner: owner, Num: 7, Str: "seven", Cn: coin.NewCoin(7, "IOV")},
	})
	assert.Nil(t, err)

	db := store.MemStore()
	opts := bazaar.Options{"conf": conf}
	assert.Nil(t, InitConfig(db, opts, "mypkg", &myconfig{}))

	var got myconfig
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, int64(7), got.Num)
	assert.Equal(t, owner, got.Owner)

	err = InitConfig(db, opts, "otherpkg", &myconfig{})
	assert.IsErr(t, errors.ErrNotFound, err)
}

type myconfig struct {
	Owner bazaar.Address `json:"owner"`
	Num   int64          `json:"num"`
	Str   string         `json:"str"`
	Cn    coin.Coin      `json:"cn"`
}

func (c *myconfig) GetOwner() bazaar.Address  { return c.Owner }
func (c *myconfig) Marshal() ([]byte, error)   { return json.Marshal(c) }
func (c *myconfig) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

func (c *myconfig) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if err := c.Cn.Validate(); err != nil {
		return errors.Wrap(err, "coin")
	}
	return nil
}

type myconfigMsg struct {
	Patch *myconfig
}

var _ bazaar.Msg = (*myconfigMsg)(nil)

func (msg *myconfigMsg) Path() string    { return "myconfig" }
func (msg *myconfigMsg) Validate() error { return msg.Patch.Validate() }
