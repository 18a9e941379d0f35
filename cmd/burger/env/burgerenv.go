// Package env reads burgerenv, preferences of the storefront for the working directory.
//
//	policy:
//	    clearBuilderOnPlacement: true
//	    keepCatalogOnError: true
//	log:
//	    level: debug
package env

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ErrInvalidEnv = errors.New("burgerenv is invalid")

type Policy struct {
	// ClearBuilderOnPlacement empties the builder after an order is placed.
	ClearBuilderOnPlacement bool `yaml:"clearBuilderOnPlacement"`

	// KeepCatalogOnError keeps the catalog when reloading it fails.
	KeepCatalogOnError bool `yaml:"keepCatalogOnError"`
}

type Log struct {
	// Level is one of logrus levels, like "info" or "debug".
	Level string `yaml:"level"`
}

type BurgerEnv struct {
	Policy Policy `yaml:"policy"`
	Log    Log    `yaml:"log"`
}

func New() *BurgerEnv {
	return &BurgerEnv{Log: Log{Level: "info"}}
}

// LogLevel parses Log.Level. Empty means info.
func (be *BurgerEnv) LogLevel() (logrus.Level, error) {
	if be.Log.Level == "" {
		return logrus.InfoLevel, nil
	}
	lv, err := logrus.ParseLevel(be.Log.Level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("%w: log.level: %s", ErrInvalidEnv, err)
	}
	return lv, nil
}

// LoadBurgerEnv reads burgerenv from filepath.
//
// When the file does not exist, it returns the default.
func LoadBurgerEnv(filepath string) (*BurgerEnv, error) {
	env := New()

	content, err := os.ReadFile(filepath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return env, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(content, env); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidEnv, filepath, err)
	}
	if _, err := env.LogLevel(); err != nil {
		return nil, err
	}
	return env, nil
}
