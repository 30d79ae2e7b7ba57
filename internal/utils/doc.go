// Package utils provides small OS and terminal helpers shared by the cmd,
// configs and workflows packages.
//
// # Filesystem
//
//   - WriteFileAtomic: temp file plus rename, used for every output file
//   - FileExists
//
// # System
//
//   - GetUsername, GetHostname
//   - SanitizeDeviceName, GenerateDeviceName: the device label recorded in
//     audit entries
//
// # Terminal and I/O
//
//   - ReadPassphrase, ReadPassphraseFromTTY: hidden password prompts
//   - IsTerminal, IsTTYAvailable
//   - ReadStdin: piped input for the text commands
//
// # Strings
//
//   - FormatPaths, TrimLineEnding
package utils
