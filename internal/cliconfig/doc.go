// Package cliconfig loads settings for the mockhttp command.
//
// Precedence, highest first:
//
//  1. Command-line flags
//  2. Environment variables (MOCKHTTP_* prefix)
//  3. Local config file (.mockhttp.yaml in the working directory)
//  4. Default values
//
// Each resolved value records the source it came from.
package cliconfig
