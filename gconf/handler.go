package gconf

import (
	"reflect"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

// OwnedConfig is a configuration with an owner. A configuration update
// message must be signed by the owner in order to apply the change.
type OwnedConfig interface {
	Configuration
	GetOwner() bazaar.Address
}

// UpdateConfigurationHandler applies configuration patch messages.
type UpdateConfigurationHandler struct {
	pkg    string
	config OwnedConfig
	auth   x.Authenticator
}

var _ bazaar.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler that processes a
// configuration patch message. The message must be a pointer to a struct
// with a "Patch" field of the same type as config.
//
// The configuration must already exist, usually created from genesis. To
// pass authentication each message must be signed by the current
// configuration owner.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	if err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) error {
	if err := Load(db, h.pkg, h.config); err != nil {
		return errors.Wrap(err, "load current configuration")
	}
	owner := h.config.GetOwner()
	if owner == nil {
		return errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	if !h.auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(h.config, payload); err != nil {
		return errors.Wrap(err, "cannot patch config with message payload")
	}
	if err := Save(db, h.pkg, h.config); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}

// patch copies every non zero field of the payload into the config.
func patch(config OwnedConfig, payload OwnedConfig) error {
	if reflect.TypeOf(payload) != reflect.TypeOf(config) {
		return errors.Wrap(errors.ErrMsg, "config in message doesn't match store")
	}
	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()
	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)
		if isZero(got) {
			continue
		}
		cval.Field(i).Set(got)
	}
	return nil
}

func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload extracts the "Patch" field of the message.
func patchPayload(tx bazaar.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr || field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}
