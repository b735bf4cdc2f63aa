// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - the registryd Lua configuration file
//
// the file is a Lua program whose final statement returns a table,
// so most of base Lua is available such as reading files to set key
// data and os.getenv to extract environment supplied items.
//
//   local M = {}
//   M.data_directory = arg[0]:match("(.*/)")
//   M.chain = "local"
//   M.block_author = os.getenv("REGISTRY_AUTHOR")
//   return M
package configuration
