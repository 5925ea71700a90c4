package config

// Config file (global)
var Config JSONConfig

// JSONConfig structure based on config.json
type JSONConfig struct {
	Origin        string       `json:"origin"`
	Port          string       `json:"port"`
	Version       string       `json:"version"`
	SessionSecret string       `json:"sessionSecret"`
	SessionHours  int          `json:"sessionHours"`
	Redis         RedisConfig  `json:"redis"`
	Scylla        ScyllaConfig `json:"scylla"`
}

// RedisConfig structure based on redis part of config.json
type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// ScyllaConfig structure based on scylla part of config.json
type ScyllaConfig struct {
	Host     string `json:"host"`
	Keyspace string `json:"keyspace"`
}
