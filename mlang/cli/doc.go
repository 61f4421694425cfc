/*
Package cli implements the mlang command line interface.

Sub-commands check, parse and tokens run the front end on source files in
batch mode; without a sub-command, or with flag -i, mlang enters an
interactive session which type checks statements as they are entered.

Configuration is read from flags and an optional configuration file
(flag --config, YAML or TOML), and is published as mlang.Configuration.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cli

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'mlang.cli'
func tracer() tracing.Trace {
	return tracing.Select("mlang.cli")
}
