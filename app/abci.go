package app

import (
	"fmt"

	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// DeliverOrError returns an abci response for DeliverTx, converting the
// error message if present, or using the successful DeliverResult.
func DeliverOrError(result *bazaar.DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return abci.ResponseDeliverTx{
		Data: result.Data,
		Log:  result.Log,
		Tags: result.Tags,
	}
}

// CheckOrError returns an abci response for CheckTx, converting the error
// message if present, or using the successful CheckResult.
func CheckOrError(result *bazaar.CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return abci.ResponseCheckTx{
		Data:      result.Data,
		Log:       result.Log,
		GasWanted: result.GasAllocated,
	}
}

// DeliverTxError converts any error into a abci.ResponseDeliverTx,
// preserving as much info as possible. When in debug mode always the full
// error information is returned.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot deliver tx: %s", log)
	}
	return abci.ResponseDeliverTx{
		Code: code,
		Log:  log,
	}
}

// CheckTxError converts any error into a abci.ResponseCheckTx, preserving
// as much info as possible. When in debug mode always the full error
// information is returned.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = fmt.Sprintf("cannot check tx: %s", log)
	}
	return abci.ResponseCheckTx{
		Code: code,
		Log:  log,
	}
}

func queryError(err error, debug bool) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseQuery{
		Code: code,
		Log:  log,
	}
}
