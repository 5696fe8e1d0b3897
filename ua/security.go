// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ua

// SecurityPolicy is the opaque cryptographic capability the client core
// depends on (§1 non-goals): sign/verify, encrypt/decrypt, and the
// header sizes the policy imposes on asymmetric (OpenSecureChannel) and
// symmetric (Message/CloseSecureChannel) chunks. Real policies
// (Basic256Sha256, Aes256Sha256RsaPss, ...) live outside this module;
// this package only defines the contract and a no-op default.
type SecurityPolicy interface {
	// URI identifies the policy on the wire, e.g.
	// "http://opcfoundation.org/UA/SecurityPolicy#None".
	URI() string

	// AsymmetricHeaderSize is the byte size of the security header used
	// on OPN chunks for this policy (policy URI + certificate fields).
	AsymmetricHeaderSize() int

	// SymmetricHeaderSize is the byte size of the security header used
	// on MSG/CLO chunks (channel id + token id).
	SymmetricHeaderSize() int

	// PlaintextOverhead is any padding/signature trailer size added to
	// a chunk's plaintext payload before it is counted against the
	// negotiated send buffer size.
	PlaintextOverhead() int

	// Sign returns a signature over data, or nil if the policy does not
	// sign.
	Sign(data []byte) ([]byte, error)

	// Verify checks a signature produced by Sign.
	Verify(data, sig []byte) error

	// Encrypt transforms plaintext into ciphertext, or returns it
	// unchanged if the policy provides no confidentiality.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt reverses Encrypt.
	Decrypt(ciphertext []byte) ([]byte, error)
}

// NoSecurityPolicyURI is the well-known "no security" policy URI.
const NoSecurityPolicyURI = "http://opcfoundation.org/UA/SecurityPolicy#None"

// NonePolicy is the default, unsigned/unencrypted SecurityPolicy, used
// when no policy is configured (mirrors the Python source's
// `security_policy=ua.SecurityPolicy()` default).
type NonePolicy struct{}

var _ SecurityPolicy = NonePolicy{}

func (NonePolicy) URI() string                { return NoSecurityPolicyURI }
func (NonePolicy) AsymmetricHeaderSize() int  { return 0 }
func (NonePolicy) SymmetricHeaderSize() int   { return 8 } // ChannelID + TokenID, both uint32
func (NonePolicy) PlaintextOverhead() int     { return 0 }
func (NonePolicy) Sign(data []byte) ([]byte, error)        { return nil, nil }
func (NonePolicy) Verify(data, sig []byte) error           { return nil }
func (NonePolicy) Encrypt(plaintext []byte) ([]byte, error) { return plaintext, nil }
func (NonePolicy) Decrypt(ciphertext []byte) ([]byte, error) { return ciphertext, nil }
