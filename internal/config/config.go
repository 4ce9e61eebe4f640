package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func LoadConfig(path string, env string) (*Entity, error) {
	path = fmt.Sprintf("%s/configs.%s.yaml", path, env)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Entity{
		Base: &Base{
			Env: env,
		},
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
