package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/commands"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/x/batch"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/multisig"
)

const exampleChainID = "quorum-testgen"

// Examples returns fixed encodings of the models, messages and
// transactions for clients to test against. Keys are derived from fixed
// seeds so the output is stable.
func Examples() ([]commands.Example, error) {
	groupKey := crypto.PrivKeyEd25519FromSeed(seed(1))
	owners := []*crypto.PrivateKey{
		crypto.PrivKeyEd25519FromSeed(seed(2)),
		crypto.PrivKeyEd25519FromSeed(seed(3)),
	}
	group := groupKey.PublicKey().Address()
	ownerAddrs := []quorum.Address{owners[0].PublicKey().Address(), owners[1].PublicKey().Address()}

	signer, bump, err := multisig.DeriveSigner(group)
	if err != nil {
		return nil, err
	}
	const nonce = 1
	proposal, proposalBump, err := multisig.DeriveProposal(nonce)
	if err != nil {
		return nil, err
	}

	send := &cash.SendMsg{
		Source:      signer.Address(),
		Destination: ownerAddrs[0],
		Amount:      100,
		Memo:        "payout",
	}
	in, err := multisig.NewInstruction(send,
		&multisig.AccountMeta{Address: signer.Address(), IsSigner: true, IsWritable: true},
		&multisig.AccountMeta{Address: ownerAddrs[0], IsWritable: true},
	)
	if err != nil {
		return nil, err
	}

	create := &multisig.CreateGroupMsg{
		Group:      group,
		Owners:     ownerAddrs,
		Threshold:  2,
		SignerBump: uint32(bump),
	}
	propose := &multisig.ProposeMsg{
		Group:        group,
		Proposal:     proposal.Address(),
		Proposer:     ownerAddrs[0],
		Nonce:        nonce,
		Instructions: []*multisig.Instruction{in},
	}
	approve := &multisig.ApproveMsg{
		Group:    group,
		Proposal: proposal.Address(),
		Owner:    ownerAddrs[1],
	}
	execute := &multisig.ExecuteMsg{
		Group:        group,
		Signer:       signer.Address(),
		Proposal:     proposal.Address(),
		Executor:     ownerAddrs[1],
		Refundee:     ownerAddrs[0],
		Instructions: []*multisig.Instruction{in},
	}

	createTx, err := signedTx(create, groupKey)
	if err != nil {
		return nil, err
	}
	proposeEnv, err := batch.NewEnvelope(propose)
	if err != nil {
		return nil, err
	}
	approveEnv, err := batch.NewEnvelope(approve)
	if err != nil {
		return nil, err
	}
	batchMsg := &batch.ExecuteBatchMsg{Messages: []*batch.Envelope{proposeEnv, approveEnv}}
	batchTx, err := signedTx(batchMsg, owners...)
	if err != nil {
		return nil, err
	}

	return []commands.Example{
		{Filename: "pub_key", Obj: groupKey.PublicKey()},
		{Filename: "priv_key", Obj: groupKey},
		{Filename: "wallet", Obj: &cash.Wallet{Balance: 1000}},
		{Filename: "group", Obj: &multisig.Group{
			Address:    group,
			SignerBump: uint32(bump),
			Owners:     ownerAddrs,
			Threshold:  2,
		}},
		{Filename: "proposal", Obj: &multisig.Proposal{
			Address:      proposal.Address(),
			Group:        group,
			Nonce:        nonce,
			Bump:         uint32(proposalBump),
			Instructions: []*multisig.Instruction{in},
			Approvals:    ownerAddrs,
		}},
		{Filename: "send_msg", Obj: send},
		{Filename: "create_group_msg", Obj: create},
		{Filename: "propose_msg", Obj: propose},
		{Filename: "approve_msg", Obj: approve},
		{Filename: "execute_msg", Obj: execute},
		{Filename: "batch_msg", Obj: batchMsg},
		{Filename: "create_group_tx", Obj: createTx},
		{Filename: "batch_tx", Obj: batchTx},
	}, nil
}

func seed(b byte) []byte {
	s := make([]byte, 32)
	for i := range s {
		s[i] = b
	}
	return s
}

func signedTx(msg quorum.Msg, keys ...*crypto.PrivateKey) (*app.Tx, error) {
	tx, err := app.NewTx(msg)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		if err := tx.Sign(k, exampleChainID, 0); err != nil {
			return nil, err
		}
	}
	return tx, nil
}
