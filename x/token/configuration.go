package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/gconf"
)

const packageName = "token"

// Configuration holds the runtime settings of the token extension.
type Configuration struct {
	// Issuer is the only address allowed to register new assets.
	Issuer swap.Address `protobuf:"bytes,1,opt,name=issuer,proto3" json:"issuer"`
}

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

func (c *Configuration) Validate() error {
	if err := c.Issuer.Validate(); err != nil {
		return errors.Wrap(err, "issuer address")
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
