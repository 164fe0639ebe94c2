/*
Package client provides access to a running swap node over the tendermint
RPC. It submits signed transactions and reads the application state.
*/
package client

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/app"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/offer"
	"github.com/iov-one/swap/x/sigs"
	"github.com/iov-one/swap/x/token"
	tmtypes "github.com/tendermint/tendermint/types"
)

// Client is a tendermint client wrapped to provide
// simple access to the data structures of the swap application.
type Client struct {
	conn Connection
}

// NewClient returns a client using given connection.
func NewClient(conn Connection) *Client {
	return &Client{conn: conn}
}

// CommitResult is the outcome of a committed transaction.
type CommitResult struct {
	Height int64
	Hash   []byte
	Result *swap.DeliverResult
}

// SubmitTx broadcasts the serialized transaction and waits until it is
// included in a block. A transaction rejected by either the check or the
// deliver phase is returned as an error carrying the application error
// code.
func (c *Client) SubmitTx(tx swap.Tx) (*CommitResult, error) {
	raw, err := swap.Marshal(tx)
	if err != nil {
		return nil, errors.Wrap(err, "serialize transaction")
	}
	res, err := c.conn.BroadcastTxCommit(tmtypes.Tx(raw))
	if err != nil {
		return nil, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	if _, err := swap.ParseCheckResponse(res.CheckTx); err != nil {
		return nil, errors.Wrap(err, "check")
	}
	result, err := swap.ParseDeliverResponse(res.DeliverTx)
	if err != nil {
		return nil, errors.Wrap(err, "deliver")
	}
	return &CommitResult{Height: res.Height, Hash: res.Hash, Result: result}, nil
}

// Query runs a raw query against the application and returns all matching
// models. Path may carry a "?prefix" modifier.
func (c *Client) Query(path string, data []byte) ([]swap.Model, error) {
	res, err := c.conn.ABCIQuery(path, data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	resp := res.Response
	if resp.IsErr() {
		return nil, errors.ABCIError(resp.Code, resp.Log)
	}

	var keys, values app.ResultSet
	if err := swap.Unmarshal(resp.Key, &keys); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := swap.Unmarshal(resp.Value, &values); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return app.JoinResults(&keys, &values)
}

// queryOne loads the single value stored under given key. ErrNotFound is
// returned if there is none.
func (c *Client) queryOne(path string, key []byte, dst swap.Persistent) error {
	res, err := c.conn.ABCIQuery(path, key)
	if err != nil {
		return errors.Wrap(errors.ErrNetwork, err.Error())
	}
	if res.Response.IsErr() {
		return errors.ABCIError(res.Response.Code, res.Response.Log)
	}
	return app.UnmarshalOneResult(res.Response.Value, dst)
}

// NextNonce returns the sequence the next signature of given signer must
// use.
func (c *Client) NextNonce(signer swap.Address) (int64, error) {
	var user sigs.UserData
	switch err := c.queryOne("/auth", signer, &user); {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// Offer returns the open offer of given maker.
func (c *Client) Offer(maker swap.Address, offerID uint64) (*offer.Offer, error) {
	var o offer.Offer
	if err := c.queryOne("/offers", offer.Key(maker, offerID), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Offers returns all open offers of given maker.
func (c *Client) Offers(maker swap.Address) ([]*offer.Offer, error) {
	models, err := c.Query("/offers?"+swap.PrefixQueryMod, maker)
	if err != nil {
		return nil, err
	}
	offers := make([]*offer.Offer, 0, len(models))
	for _, m := range models {
		var o offer.Offer
		if err := swap.Unmarshal(m.Value, &o); err != nil {
			return nil, errors.Wrapf(err, "offer %X", m.Key)
		}
		offers = append(offers, &o)
	}
	return offers, nil
}

// Balance returns the balance of the owner's account. ErrNotFound is
// returned when the account does not exist.
func (c *Client) Balance(owner swap.Address, ticker string) (*uint256.Int, error) {
	var acc token.Account
	if err := c.queryOne("/accounts", token.AccountKey(owner, ticker), &acc); err != nil {
		return nil, err
	}
	return acc.Amount(), nil
}
