// Package files turns command-line arguments into the list of files a
// command works on, and names the files it writes.
//
// Arguments may be plain paths, directories (walked recursively, hidden
// subdirectories skipped) or globs with ** support. Encryption ignores
// files that already end in .fortress; decryption only accepts them.
//
// Decrypted files are named after the name stored in the container, but
// that name is untrusted: SafeBaseName keeps only its last path element.
package files
