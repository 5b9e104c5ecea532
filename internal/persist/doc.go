// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package persist makes store.State durable and moves it in and out of the
// application.
//
// Two store.Persister implementations are provided: JSONFile keeps the state in a
// single pretty printed JSON document (the "command_groups.json" data file) and
// SQLite keeps it in a two table SQLite database. Encode, Decode and Validate
// handle the JSON and YAML blobs used by export and import, and Fetch reads an
// import blob from a path or a go-getter URL.
package persist
