// Package config provides configuration parsing for popover projects.
//
// The configuration is stored in popover.json or popover.yaml at the
// project root. This package handles loading, saving, and validating
// configuration.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "hotReload": true
//	  },
//	  "build": {
//	    "output": "dist",
//	    "entry": "./cmd/popover-wasm",
//	    "tags": ["debug"]
//	  },
//	  "watch": {
//	    "paths": ["."],
//	    "ignore": ["dist/**", "**/*_test.go"]
//	  },
//	  "popover": {
//	    "placement": "top",
//	    "offset": 8,
//	    "padding": 8,
//	    "fadeMs": 200,
//	    "autoCloseMs": 500,
//	    "zIndex": 9999,
//	    "className": "v-popover"
//	  }
//	}
//
// The same keys are used in YAML.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", cfg.DevAddress())
package config
