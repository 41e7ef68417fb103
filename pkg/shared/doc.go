// Package shared provides common utilities used across the envoi operator
// SDK. It includes network normalization with default Voi node endpoints,
// operator credential loading from the environment or a .env file, key
// parsing, TOML deployment files, and the console logger used by the command
// line tools.
//
// # Environment Variables
//
// ENVOI_NETWORK selects mainnet or testnet (default testnet). The signing
// secret comes from ENVOI_MNEMONIC (or MN) or ENVOI_PRIVATE_KEY. Any of these
// may be prefixed with MAINNET_ or TESTNET_ to scope it to one network.
// ENVOI_ALGOD_URL and ENVOI_INDEXER_URL override the default endpoints.
package shared
