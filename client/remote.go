// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/query"
	rpcaccount "github.com/bitmark-inc/registryd/rpc/account"
	"github.com/bitmark-inc/registryd/rpc/certificate"
	"github.com/bitmark-inc/registryd/rpc/node"
	"github.com/bitmark-inc/registryd/rpc/registry"
	"github.com/bitmark-inc/registryd/rpc/transaction"
	"github.com/bitmark-inc/registryd/state"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// Remote - JSON-RPC connection to a registryd node
type Remote struct {
	client *rpc.Client
}

// NewRemote - connect over TLS
func NewRemote(address string, tlsConfig *tls.Config) (*Remote, error) {
	conn, err := tls.Dial("tcp", address, tlsConfig)
	if nil != err {
		return nil, err
	}
	return &Remote{
		client: jsonrpc.NewClient(conn),
	}, nil
}

// PinnedTLSConfig - accept only the certificate with this SHA3-256
// fingerprint, as logged by the node at start up
func PinnedTLSConfig(fingerprint [32]byte) *tls.Config {
	return &tls.Config{
		// the chain is not verified, the fingerprint replaces it
		InsecureSkipVerify: true,
		VerifyPeerCertificate: func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if 0 == len(rawCerts) || fingerprint != certificate.Fingerprint(rawCerts[0]) {
				return fault.FingerprintMismatch
			}
			return nil
		},
	}
}

// server errors arrive as text
func remoteError(err error) error {
	if serverError, ok := err.(rpc.ServerError); ok {
		return fault.Lookup(string(serverError))
	}
	return err
}

func (r *Remote) call(ctx context.Context, method string, arguments interface{}, reply interface{}) error {
	call := r.client.Go(method, arguments, reply, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case c := <-call.Done:
		if nil != c.Error {
			return remoteError(c.Error)
		}
		return nil
	}
}

// Submit - queue a transaction on the node
func (r *Remote) Submit(ctx context.Context, packed transactionrecord.Packed) (digest.Digest, error) {
	var reply transaction.SubmitReply
	err := r.call(ctx, "Transaction.Submit", &transaction.SubmitArguments{Transaction: packed}, &reply)
	return reply.TxId, err
}

// Status - inclusion status
func (r *Remote) Status(ctx context.Context, id digest.Digest) (*query.Status, error) {
	var reply query.Status
	if err := r.call(ctx, "Transaction.Status", &transaction.StatusArguments{TxId: id}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Info - node summary
func (r *Remote) Info(ctx context.Context) (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := r.call(ctx, "Node.Info", &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GenesisHash - the node's chain
func (r *Remote) GenesisHash(ctx context.Context) (digest.Digest, error) {
	info, err := r.Info(ctx)
	if nil != err {
		return digest.Digest{}, err
	}
	return info.GenesisHash, nil
}

// AccountNonce - nonce for the account's next transaction
func (r *Remote) AccountNonce(ctx context.Context, a account.Account) (uint64, error) {
	var reply rpcaccount.NonceReply
	err := r.call(ctx, "Account.Nonce", &rpcaccount.Arguments{Account: a}, &reply)
	return reply.Nonce, err
}

// FreeBalance - spendable balance
func (r *Remote) FreeBalance(ctx context.Context, a account.Account) (uint64, error) {
	var reply rpcaccount.BalanceReply
	err := r.call(ctx, "Account.Balance", &rpcaccount.Arguments{Account: a}, &reply)
	return reply.Balance, err
}

// GetOrg - an org or nil
func (r *Remote) GetOrg(ctx context.Context, id identifier.Id) (*state.Org, error) {
	var reply registry.OrgReply
	err := r.call(ctx, "Registry.GetOrg", &registry.IdArguments{Id: id}, &reply)
	return reply.Org, err
}

// ListOrgs - all orgs
func (r *Remote) ListOrgs(ctx context.Context) ([]query.OrgEntry, error) {
	var reply registry.OrgsReply
	err := r.call(ctx, "Registry.ListOrgs", &registry.ListArguments{}, &reply)
	return reply.Orgs, err
}

// GetUser - a user or nil
func (r *Remote) GetUser(ctx context.Context, id identifier.Id) (*state.User, error) {
	var reply registry.UserReply
	err := r.call(ctx, "Registry.GetUser", &registry.IdArguments{Id: id}, &reply)
	return reply.User, err
}

// ListUsers - all users
func (r *Remote) ListUsers(ctx context.Context) ([]query.UserEntry, error) {
	var reply registry.UsersReply
	err := r.call(ctx, "Registry.ListUsers", &registry.ListArguments{}, &reply)
	return reply.Users, err
}

// GetProject - a project or nil
func (r *Remote) GetProject(ctx context.Context, projectId identifier.ProjectId) (*state.Project, error) {
	var reply registry.ProjectReply
	err := r.call(ctx, "Registry.GetProject", &registry.ProjectArguments{Project: projectId}, &reply)
	return reply.Project, err
}

// ListProjects - all projects, or those of one domain
func (r *Remote) ListProjects(ctx context.Context, domain *identifier.Domain) ([]*state.Project, error) {
	var reply registry.ProjectsReply
	err := r.call(ctx, "Registry.ListProjects", &registry.ListProjectsArguments{Domain: domain}, &reply)
	return reply.Projects, err
}

// GetCheckpoint - a checkpoint or nil
func (r *Remote) GetCheckpoint(ctx context.Context, id digest.Digest) (*state.Checkpoint, error) {
	var reply registry.CheckpointReply
	err := r.call(ctx, "Registry.GetCheckpoint", &registry.CheckpointArguments{Id: id}, &reply)
	return reply.Checkpoint, err
}

// Close - drop the connection
func (r *Remote) Close() error {
	return r.client.Close()
}
