package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Query sends an ABCI query to the application and returns the models
// of the response. Failed queries are returned as the registered error
// matching the response code.
func Query(app abci.Application, path string, data []byte) ([]quorum.Model, error) {
	res := app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return toModels(res.Key, res.Value)
}

// QueryOne loads the value stored under key in the bucket served at path
// into dest. It returns ErrNotFound if nothing is stored.
func QueryOne(app abci.Application, path string, key []byte, dest quorum.Persistent) error {
	res := app.Query(abci.RequestQuery{Path: path, Data: key})
	if res.Code != errors.SuccessABCICode {
		return errors.ABCIError(res.Code, res.Log)
	}
	return UnmarshalOneResult(res.Value, dest)
}

func toModels(keys, values []byte) ([]quorum.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}
