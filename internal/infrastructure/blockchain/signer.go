package blockchain

import (
	"crypto/ecdsa"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

var (
	ErrInvalidMnemonic  = errors.New("invalid mnemonic")
	ErrInvalidKey       = errors.New("invalid private key")
	ErrNoSignerMaterial = errors.New("either a private key or a mnemonic is required")
)

// Signer holds the key that signs every write
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner picks the private key when both are set
func NewSigner(privateKey, mnemonic, passphrase string, accountIndex uint32) (*Signer, error) {
	switch {
	case strings.TrimSpace(privateKey) != "":
		return NewSignerFromHex(privateKey)
	case strings.TrimSpace(mnemonic) != "":
		return NewSignerFromMnemonic(mnemonic, passphrase, accountIndex)
	default:
		return nil, ErrNoSignerMaterial
	}
}

func NewSignerFromHex(privateKey string) (*Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKey), "0x"))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}
	return newSigner(key), nil
}

// NewSignerFromMnemonic derives m/44'/60'/0'/0/accountIndex, the path every EVM wallet uses
func NewSignerFromMnemonic(mnemonic, passphrase string, accountIndex uint32) (*Signer, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, passphrase)
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, errors.Wrap(err, "creating master key")
	}

	path := []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + 60,
		hdkeychain.HardenedKeyStart,
		0,
		accountIndex,
	}
	child := master
	for _, index := range path {
		child, err = child.Derive(index)
		if err != nil {
			return nil, errors.Wrap(err, "deriving key")
		}
	}

	priv, err := child.ECPrivKey()
	if err != nil {
		return nil, errors.Wrap(err, "extracting private key")
	}
	key, err := crypto.ToECDSA(priv.Serialize())
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}
	return newSigner(key), nil
}

func newSigner(key *ecdsa.PrivateKey) *Signer {
	return &Signer{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

func (s *Signer) Address() common.Address {
	return s.address
}
