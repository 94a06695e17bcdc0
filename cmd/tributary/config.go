// Copyright (C) 2025, Lux Industries, Inc.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/luxfi/geth/common/hexutil"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luxfi/tributary"
)

const (
	envPrefix = "TRIBUTARY"

	// Command line option keys
	ConfigFileKey = "config-file"
	SpecFileKey   = "spec-file"
	SpecKey       = "spec"
	RemovedKey    = "removed"
	IndexKey      = "index"
)

// buildViper binds fs and, if one is set, reads the JSON config file. Keys
// may also be provided as TRIBUTARY_ prefixed environment variables, with
// hyphens replaced by underscores.
func buildViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if filename := v.GetString(ConfigFileKey); filename != "" {
		v.SetConfigFile(filename)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

// loadSpec reads the spec from the persisted hex form or a JSON spec file.
func loadSpec(v *viper.Viper) (*tributary.Spec, error) {
	switch {
	case v.GetString(SpecKey) != "":
		b, err := hexutil.Decode(v.GetString(SpecKey))
		if err != nil {
			return nil, fmt.Errorf("invalid spec hex: %w", err)
		}
		return tributary.Parse(b)
	case v.GetString(SpecFileKey) != "":
		b, err := os.ReadFile(os.ExpandEnv(v.GetString(SpecFileKey)))
		if err != nil {
			return nil, fmt.Errorf("failed to read spec file: %w", err)
		}
		var spec tributary.Spec
		if err := json.Unmarshal(b, &spec); err != nil {
			return nil, fmt.Errorf("failed to parse spec file: %w", err)
		}
		return &spec, nil
	default:
		return nil, fmt.Errorf("one of --%s or --%s is required", SpecKey, SpecFileKey)
	}
}

func removedKeys(v *viper.Viper) ([]tributary.PublicKey, error) {
	var keys []tributary.PublicKey
	for _, text := range v.GetStringSlice(RemovedKey) {
		var key tributary.PublicKey
		if err := key.UnmarshalText([]byte(text)); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
