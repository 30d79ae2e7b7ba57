// Package logger provides leveled console logging for the fortress CLI.
//
// # Verbosity Levels
//
//   - --verbose: info and warning messages
//   - --debug: everything, including debug details and errors
//
// Without flags only WarnfAlways and Fatalf produce output. Command output
// meant for the user goes through spinner final messages instead.
//
// # Log Methods
//
//	Logger.Infof()           // --verbose or --debug
//	Logger.Debugf()          // --debug
//	Logger.Warnf()           // --verbose or --debug
//	Logger.WarnfAlways()     // always
//	Logger.Errorf()          // --debug
//	Logger.ErrorfAndReturn() // --debug, returns the message as an error
//	Logger.Fatalf()          // always, then exits
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Encrypting %d files", count)
//
// Passphrases, security keys and derived keys must never be passed to any
// of these methods.
package logger
