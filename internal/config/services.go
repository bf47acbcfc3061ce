package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServiceSettings declares where one process listens and where its peers
// reach it.
type ServiceSettings struct {
	Port        int    `yaml:"port"`
	URL         string `yaml:"url"`
	Description string `yaml:"description,omitempty"`
}

// Addr returns the listen address for the service.
func (s *ServiceSettings) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// ServicesConfig is the shared service topology.
type ServicesConfig struct {
	Gateway *ServiceSettings `yaml:"gateway"`
	Auth    *ServiceSettings `yaml:"auth"`
	Project *ServiceSettings `yaml:"project"`
	Task    *ServiceSettings `yaml:"task"`
}

// LoadServicesConfig reads the topology from path.
func LoadServicesConfig(path string) (*ServicesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read services config: %w", err)
	}

	var cfg ServicesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse services config: %w", err)
	}
	cfg.applyDefaults()

	for name, svc := range map[string]*ServiceSettings{
		"gateway": cfg.Gateway, "auth": cfg.Auth, "project": cfg.Project, "task": cfg.Task,
	} {
		if svc.Port == 0 {
			return nil, fmt.Errorf("service %s: port is required", name)
		}
	}
	return &cfg, nil
}

// LoadServicesConfigOrDefault reads the topology from path, falling back to
// the default local layout when the file is absent or invalid.
func LoadServicesConfigOrDefault(path string) *ServicesConfig {
	cfg, err := LoadServicesConfig(path)
	if err != nil {
		return DefaultServicesConfig()
	}
	return cfg
}

// DefaultServicesConfig returns the local development topology.
func DefaultServicesConfig() *ServicesConfig {
	cfg := &ServicesConfig{
		Gateway: &ServiceSettings{Port: 8080, Description: "Public HTTP edge"},
		Auth:    &ServiceSettings{Port: 8081, Description: "Credential and identity authority"},
		Project: &ServiceSettings{Port: 8082, Description: "Project lifecycle and membership"},
		Task:    &ServiceSettings{Port: 8083, Description: "Task lifecycle"},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *ServicesConfig) applyDefaults() {
	if c.Gateway == nil {
		c.Gateway = &ServiceSettings{Port: 8080}
	}
	if c.Auth == nil {
		c.Auth = &ServiceSettings{Port: 8081}
	}
	if c.Project == nil {
		c.Project = &ServiceSettings{Port: 8082}
	}
	if c.Task == nil {
		c.Task = &ServiceSettings{Port: 8083}
	}
	for _, svc := range []*ServiceSettings{c.Gateway, c.Auth, c.Project, c.Task} {
		if svc.URL == "" && svc.Port != 0 {
			svc.URL = fmt.Sprintf("http://localhost:%d", svc.Port)
		}
	}
}
