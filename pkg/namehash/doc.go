// Package namehash computes the 32-byte node identifiers used by the envoi
// registry, resolver and registrar contracts.
//
// A name is a dotted string with the most specific label first. Labels are
// classified before hashing: a valid account address hashes as its raw public
// key, a decimal string hashes as a 32-byte big-endian integer, and anything
// else hashes as its UTF-8 bytes.
//
// # Getting Started
//
//	node := namehash.Namehash("nshell.voi")
//	fmt.Println(node.Hex())
//
//	legacy, err := namehash.NamehashWith("foo.eth", namehash.Keccak256)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(legacy.Hex())
package namehash
