// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type BalanceError GenericError
type ProcessError GenericError
type RecordError GenericError

// registry errors - keep in alphabetic order
//
// these are the deterministic outcomes of applying a message and
// their text is carried in failure events, so never change the text
var (
	AlreadyAMember                     = ExistsError("the user is already a member of the org")
	AuthorHasNoAssociatedUser          = PermissionError("the transaction author has no associated user")
	DuplicateOrgId                     = ExistsError("an org with the same id already exists")
	DuplicateProjectId                 = ExistsError("a project with the same id already exists")
	DuplicateUserId                    = ExistsError("a user with the same id already exists")
	IdAlreadyTaken                     = ExistsError("the id is already taken by an org or a user")
	IdRetired                          = ExistsError("the id has been retired and cannot be reused")
	InexistentCheckpointId             = NotFoundError("the checkpoint does not exist")
	InexistentInitialProjectCheckpoint = NotFoundError("the project has no initial checkpoint")
	InexistentOrg                      = NotFoundError("the org does not exist")
	InexistentProjectId                = NotFoundError("the project does not exist")
	InexistentUser                     = NotFoundError("the user does not exist")
	InsufficientSenderPermissions      = PermissionError("the sender has insufficient permissions")
	InvalidCheckpointAncestry          = InvalidError("the checkpoint does not descend from the initial project checkpoint")
	UnregisterableOrg                  = InvalidError("the org has projects or members other than the author")
	UnregisterableUser                 = InvalidError("the user has projects or is a member of an org")
	UserAccountAssociated              = ExistsError("the author account is already associated with a user")
)

// resource errors
var (
	BalanceOverflow     = BalanceError("balance overflow")
	InsufficientBalance = BalanceError("insufficient balance")
	InsufficientFee     = BalanceError("fee is below the minimum for this message")
)

// value errors
var (
	InvalidBase58          = InvalidError("invalid base58 text")
	InvalidChecksum        = InvalidError("checksum mismatch")
	InvalidDigest          = InvalidError("invalid digest")
	InvalidIdentifier      = InvalidError("id must be 1 to 32 characters of a-z, 0-9 and non-adjacent inner hyphens")
	InvalidKeyLength       = InvalidError("invalid key length")
	InvalidKeyType         = InvalidError("invalid key type")
	InvalidProjectDomain   = InvalidError("invalid project domain")
	InvalidProjectName     = InvalidError("project name must be 1 to 32 characters of a-z, 0-9 and non-adjacent inner hyphens")
	MetadataTooLong        = InvalidError("metadata exceeds 128 bytes")
	NotPublicKey           = InvalidError("not a public key")
	NotPrivateKey          = InvalidError("not a private key")
	InvalidSeed            = InvalidError("invalid seed")
	MissingParameters      = InvalidError("missing parameters")
	InvalidCount           = InvalidError("invalid count")
	InvalidChain           = InvalidError("invalid chain")
	InvalidBlockAuthor     = InvalidError("invalid block author")
	InvalidConfigurationDB = InvalidError("database configuration is invalid")
	InvalidIpAddress       = InvalidError("invalid IP address")
	InvalidListenAddress   = InvalidError("invalid listen address")
)

// file errors
var (
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	FingerprintMismatch          = InvalidError("certificate fingerprint mismatch")
	InvalidDataDirectory         = InvalidError("data directory is not valid")
	InvalidDuration              = InvalidError("invalid duration")
	InvalidEndowment             = InvalidError("invalid genesis endowment")
	NotPlainFileName             = InvalidError("file name must not contain a directory")
)

// submission errors
var (
	InvalidSignature     = InvalidError("invalid signature")
	NonceTooHigh         = InvalidError("nonce is ahead of the account nonce")
	NonceTooLow          = InvalidError("nonce has already been used")
	WrongGenesisHash     = InvalidError("transaction is for a different chain")
	TransactionExpired   = ProcessError("transaction expired before inclusion")
	TransactionDuplicate = ExistsError("transaction is already pending")
	StreamTerminated     = ProcessError("stream terminated before the transaction was included")
	RateLimiting         = ProcessError("rate limiting")
	NotInitialised       = ProcessError("not initialised")
	AlreadyInitialised   = ProcessError("already initialised")
	GenesisMismatch      = ProcessError("stored genesis differs from configured genesis")
	DatabaseIsNotSet     = ProcessError("database is not set")
	TransactionInUse     = ProcessError("a write transaction is already in progress")
	TransactionFinished  = ProcessError("transaction has already been committed or aborted")
	NoLayerToRelease     = ProcessError("no nested layer to release")
	LayersStillOpen      = ProcessError("nested layers are still open")
	BlockNotFound        = NotFoundError("block not found")
	TransactionNotFound  = NotFoundError("transaction not found")
	AccountNotFound      = NotFoundError("account not found")
)

// decode errors
var (
	NotTransactionPack   = RecordError("not a transaction pack")
	NotEventPack         = RecordError("not an event pack")
	UnknownMessageTag    = RecordError("unknown message tag")
	UnknownEventTag      = RecordError("unknown event tag")
	TrailingBytes        = RecordError("trailing bytes after record")
	Truncated            = RecordError("record is truncated")
	MissingSuccessEvent  = RecordError("success event is missing")
	MissingDispatchEvent = RecordError("dispatch result event is missing")
	CorruptRecord        = RecordError("stored record is corrupt")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e BalanceError) Error() string    { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecordError) Error() string     { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrBalance(e error) bool    { _, ok := e.(BalanceError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool     { _, ok := e.(RecordError); return ok }
