package config

import (
	"fmt"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"lottery/internal/logging"
	"lottery/pkg/tz"
)

type Config struct {
	LogFile  string `env:"LOTTERY_LOG_FILE,default=lottery_log.txt"`
	Locale   string `env:"LOTTERY_LOCALE,default=en"`
	Timezone string `env:"LOTTERY_TIMEZONE,default=Local"`
	LogLevel string `env:"LOTTERY_LOG_LEVEL,default=warn"`
	Colours  bool   `env:"LOTTERY_COLOURS,default=true"`

	RegistrationWindow time.Duration `env:"LOTTERY_REGISTRATION_WINDOW,default=10s"`
	ExtensionWindow    time.Duration `env:"LOTTERY_EXTENSION_WINDOW,default=3s"`
	MinParticipants    int           `env:"LOTTERY_MIN_PARTICIPANTS,default=5"`
	CancelAfter        time.Duration `env:"LOTTERY_CANCEL_AFTER,default=5s"`
	TickInterval       time.Duration `env:"LOTTERY_TICK_INTERVAL,default=100ms"`
	SnapshotInterval   time.Duration `env:"LOTTERY_SNAPSHOT_INTERVAL,default=2s"`
}

// Load charge la configuration depuis .env puis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement.
	}

	cfg := &Config{}
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate applique toutes les règles sur la configuration chargée,
// y compris après surcharge par les options de la ligne de commande.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LogFile) == "" {
		return fmt.Errorf("config: LOTTERY_LOG_FILE est requis et ne peut pas être vide")
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: LOTTERY_LOG_LEVEL invalide: %w", err)
	}

	if _, err := tz.Load(c.Timezone); err != nil {
		return fmt.Errorf("config: LOTTERY_TIMEZONE invalide: %w", err)
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"LOTTERY_REGISTRATION_WINDOW", c.RegistrationWindow},
		{"LOTTERY_EXTENSION_WINDOW", c.ExtensionWindow},
		{"LOTTERY_CANCEL_AFTER", c.CancelAfter},
		{"LOTTERY_TICK_INTERVAL", c.TickInterval},
		{"LOTTERY_SNAPSHOT_INTERVAL", c.SnapshotInterval},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("config: %s doit être strictement positif (reçu %s)", d.name, d.value)
		}
	}

	if c.MinParticipants < 0 {
		return fmt.Errorf("config: LOTTERY_MIN_PARTICIPANTS ne peut pas être négatif (reçu %d)", c.MinParticipants)
	}

	return nil
}
