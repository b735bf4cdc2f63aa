// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package certificate - TLS setup for the RPC listener
package certificate

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/registryd/fault"
)

// lifetime of a generated certificate
const validity = 10 * 365 * 24 * time.Hour

// Get - TLS configuration and fingerprint from PEM text
func Get(log *logger.L, name string, certificate string, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if nil != err {
		log.Errorf("%s failed to load keypair: %s", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	return tlsConfiguration, Fingerprint(keyPair.Certificate[0]), nil
}

// Load - read the PEM files and call Get
func Load(log *logger.L, name string, certificateFileName string, keyFileName string) (*tls.Config, [32]byte, error) {
	certificate, err := ioutil.ReadFile(certificateFileName)
	if nil != err {
		log.Errorf("%s certificate: %q error: %s", name, certificateFileName, err)
		return nil, [32]byte{}, err
	}
	key, err := ioutil.ReadFile(keyFileName)
	if nil != err {
		log.Errorf("%s private key: %q error: %s", name, keyFileName, err)
		return nil, [32]byte{}, err
	}
	return Get(log, name, string(certificate), string(key))
}

// Generate - write a new self-signed certificate and key, never overwriting
func Generate(name string, certificateFileName string, keyFileName string, extraHosts []string) error {
	if exists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}
	if exists(keyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "registryd self signed cert for: " + name
	cert, key, err := certgen.NewTLSCertPair(org, time.Now().Add(validity), false, extraHosts)
	if nil != err {
		return err
	}

	if err := ioutil.WriteFile(certificateFileName, cert, 0666); nil != err {
		return err
	}
	if err := ioutil.WriteFile(keyFileName, key, 0600); nil != err {
		_ = os.Remove(certificateFileName)
		return err
	}
	return nil
}

// Fingerprint - SHA3-256 of a DER certificate
//
// openssl x509 -outform DER -in registryd-local-rpc.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}

func exists(fileName string) bool {
	_, err := os.Stat(fileName)
	return nil == err
}
