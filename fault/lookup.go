// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// errors that may appear as the outcome of a dispatched message
var dispatchErrors = []error{
	AlreadyAMember,
	AuthorHasNoAssociatedUser,
	DuplicateOrgId,
	DuplicateProjectId,
	DuplicateUserId,
	IdAlreadyTaken,
	IdRetired,
	InexistentCheckpointId,
	InexistentInitialProjectCheckpoint,
	InexistentOrg,
	InexistentProjectId,
	InexistentUser,
	InsufficientSenderPermissions,
	InvalidCheckpointAncestry,
	UnregisterableOrg,
	UnregisterableUser,
	UserAccountAssociated,
	BalanceOverflow,
	InsufficientBalance,
}

// errors that stop a transaction being included, as reported by a node
var submissionErrors = []error{
	InsufficientFee,
	InvalidSignature,
	NonceTooHigh,
	NonceTooLow,
	WrongGenesisHash,
	TransactionDuplicate,
	TransactionExpired,
	NotTransactionPack,
	UnknownMessageTag,
	TrailingBytes,
	Truncated,
	CorruptRecord,
	InvalidIdentifier,
	InvalidProjectName,
	InvalidProjectDomain,
	MetadataTooLong,
	RateLimiting,
	InvalidCount,
	BlockNotFound,
	TransactionNotFound,
	MissingParameters,
	DatabaseIsNotSet,
	NotInitialised,
}

var (
	dispatchIndex map[string]error
	knownIndex    map[string]error
)

func init() {
	dispatchIndex = make(map[string]error, len(dispatchErrors))
	knownIndex = make(map[string]error, len(dispatchErrors)+len(submissionErrors))
	for _, e := range dispatchErrors {
		dispatchIndex[e.Error()] = e
		knownIndex[e.Error()] = e
	}
	for _, e := range submissionErrors {
		knownIndex[e.Error()] = e
	}
}

// Lookup - recover the error value from its text
//
// text that is not a known error is returned as a ProcessError so the
// caller still gets a non-nil error
func Lookup(text string) error {
	if e, ok := knownIndex[text]; ok {
		return e
	}
	return ProcessError(text)
}

// IsDispatchError - true if the error can be the recorded outcome of a message
func IsDispatchError(e error) bool {
	if nil == e {
		return false
	}
	found, ok := dispatchIndex[e.Error()]
	return ok && found == e
}
