/*
Package egrecord reads and writes published election records: the election
definition (manifest), group constants, guardian public records, encrypted
ballots, encrypted and decrypted tallies with their partial decryptions.

The record is a set of JSON documents. Scalars are handled by package codec,
the integrity hashes of the manifest by package hashtree, and whole documents
by package wire, which turns the id-keyed wire trees into the typed values of
package record and back. Package consumer reads a record from a store, package
publish writes one.

This package holds the error kinds shared by all of them.
*/
package egrecord
