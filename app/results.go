package app

import (
	"github.com/gogo/protobuf/proto"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// ResultSet is the encoding of the keys or the values returned by a
// query. Both lists of a query response always have the same length.
type ResultSet struct {
	Results [][]byte
}

// resultSet is the protobuf wire form of ResultSet.
type resultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *resultSet) Reset()         { *m = resultSet{} }
func (m *resultSet) String() string { return proto.CompactTextString(m) }
func (*resultSet) ProtoMessage()    {}

var _ bazaar.Persistent = (*ResultSet)(nil)

func (r *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal(&resultSet{Results: r.Results})
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	var pb resultSet
	if err := proto.Unmarshal(raw, &pb); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	r.Results = pb.Results
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys given a set of models
func ResultsFromKeys(models []bazaar.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values given a set of
// models
func ResultsFromValues(models []bazaar.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues and makes
// them a consistent whole again.
func JoinResults(keys, values *ResultSet) ([]bazaar.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys and %d values", len(kref), len(vref))
	}
	mods := make([]bazaar.Model, len(kref))
	for i := range mods {
		mods[i] = bazaar.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult parses a result set and, if it is not empty,
// unmarshals the first result into o.
func UnmarshalOneResult(raw []byte, o bazaar.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(raw); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return nil
	}
	if len(res.Results) > 1 {
		return errors.Wrapf(errors.ErrState, "%d results", len(res.Results))
	}
	return o.Unmarshal(res.Results[0])
}
