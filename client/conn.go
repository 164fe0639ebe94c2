package client

import (
	"sync"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// Connection is the part of the tendermint RPC used by the client.
type Connection interface {
	ABCIQuery(path string, data cmn.HexBytes) (*ctypes.ResultABCIQuery, error)
	BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error)
}

var _ Connection = (*rpcclient.HTTP)(nil)
var _ Connection = (*AppConnection)(nil)

// NewHTTPConnection takes a URL and sends all requests to the remote node
func NewHTTPConnection(remote string) *rpcclient.HTTP {
	return rpcclient.NewHTTP(remote, "/websocket")
}

// AppConnection talks directly to an in-process application. Every
// broadcast transaction is committed in its own block. Use it in tests and
// tools that do not need consensus.
type AppConnection struct {
	mu     sync.Mutex
	app    abci.Application
	height int64
}

// NewAppConnection wraps given application. Block heights continue from
// the last height the application reports.
func NewAppConnection(app abci.Application) *AppConnection {
	info := app.Info(abci.RequestInfo{})
	return &AppConnection{app: app, height: info.LastBlockHeight}
}

// ABCIQuery runs the query against the last committed state.
func (c *AppConnection) ABCIQuery(path string, data cmn.HexBytes) (*ctypes.ResultABCIQuery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.app.Query(abci.RequestQuery{Path: path, Data: data})
	return &ctypes.ResultABCIQuery{Response: res}, nil
}

// BroadcastTxCommit checks the transaction and, if it is accepted, delivers
// it in a new block.
func (c *AppConnection) BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := &ctypes.ResultBroadcastTxCommit{Hash: tx.Hash()}
	res.CheckTx = c.app.CheckTx(tx)
	if res.CheckTx.IsErr() {
		return res, nil
	}

	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{Height: c.height, Time: time.Now()},
	})
	res.DeliverTx = c.app.DeliverTx(tx)
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	res.Height = c.height
	return res, nil
}
