// Package config loads service configuration from environment variables
// using kelseyhightower/envconfig.
//
// Every field has a default, so an empty environment yields a working
// desktop on port 8000 with an on-disk sqlite session store.
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Desktop.HomeWindow)
package config
