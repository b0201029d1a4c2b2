// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth authenticates the operators who record candidacies.

# Operator Keys

Operator keys use HMAC-SHA256 over the operator id:

	key := auth.GenerateOperatorKey(operatorID, salt)
	err := auth.ValidateOperatorKey(operatorID, key, salt)

The key is URL-safe base64 without padding. Since it is deterministic, the
same operator id and salt always produce the same key, so keys are never
stored. Operators send both on every write:

	X-Operator-ID:  registrar-01
	X-Operator-Key: <key>

Keys are minted from the command line with -mint-key.
*/
package auth
