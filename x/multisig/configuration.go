package multisig

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

const confPkg = "multisig"

// Configuration limits the size of groups and proposals.
type Configuration struct {
	MaxOwners       uint32 `protobuf:"varint,1,opt,name=max_owners,json=maxOwners,proto3" json:"max_owners"`
	MaxInstructions uint32 `protobuf:"varint,2,opt,name=max_instructions,json=maxInstructions,proto3" json:"max_instructions"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration is used when the genesis does not configure the
// extension.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxOwners:       32,
		MaxInstructions: 16,
	}
}

func (m *Configuration) Validate() error {
	var errs error
	if m.MaxOwners == 0 {
		errs = errors.AppendField(errs, "MaxOwners", errors.ErrEmpty)
	}
	if m.MaxInstructions == 0 {
		errs = errors.AppendField(errs, "MaxInstructions", errors.ErrEmpty)
	}
	return errs
}

// loadConf returns the stored configuration or the defaults.
func loadConf(db quorum.ReadOnlyKVStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}
