package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs  `toml:"database"`
	ApiServer ServerConfigs    `toml:"api_server"`
	Chain     ChainConfigs     `toml:"chain"`
	Pinata    PinataConfigs    `toml:"pinata"`
	Mail      MailConfigs      `toml:"mail"`
	Storage   S3Configs        `toml:"storage"`
	Redis     RedisConfigs     `toml:"redis"`
	Kafka     KafkaConfigs     `toml:"kafka"`
	Intake    IntakeConfigs    `toml:"intake"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

type ChainConfigs struct {
	Chain          string        `toml:"chain"`
	RPCEndpoint    string        `toml:"rpc_endpoint"`
	ChainID        int64         `toml:"chain_id"`
	MinterKey      string        `toml:"minter_key"`
	ConfirmTimeout time.Duration `toml:"confirm_timeout"`
}

type PinataConfigs struct {
	Token string `toml:"token"`
}

type MailConfigs struct {
	Region       string `toml:"region"`
	AccessKey    string `toml:"access_key"`
	SecretKey    string `toml:"secret_key"`
	VerifiedMail string `toml:"verified_mail"`
}

type S3Configs struct {
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	Bucket         string `toml:"bucket"`
	SSLDisabled    bool   `toml:"ssl_disabled"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr       string `toml:"addr"`
	BatchTopic string `toml:"batch_topic"`
}

type IntakeConfigs struct {
	EventbriteURL string `toml:"eventbrite_url"`

	// WebhookEndpoint is the public URL eventbrite delivers order webhooks
	// to. It is registered per event at registration time.
	WebhookEndpoint string `toml:"webhook_endpoint"`
}

// Load reads the configuration file at path. Secrets are expected to be in
// the file itself; there are no implicit environment fallbacks.
func Load(path string) (Configs, error) {
	var cfg Configs
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
	}

	return cfg, nil
}
