/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of object, a Model,
addressed by a primary key chosen by the caller. Records
are serialized with the model's own Marshal and decoded
into a destination with Unmarshal.
*/
package orm

import (
	"github.com/iov-one/quorum"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	quorum.Persistent
	Validate() error
}
