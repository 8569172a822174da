package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DB         DBConfig         `mapstructure:"db"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Identity   IdentityConfig   `mapstructure:"identity"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Admin      AdminConfig      `mapstructure:"admin"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Invitation InvitationConfig `mapstructure:"invitation"`
	AppHost    string           `mapstructure:"host" validate:"required"`
}

// DBConfig describes the remote store. An empty Source means the service
// runs in offline mode.
type DBConfig struct {
	Source         string        `mapstructure:"source"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" validate:"gt=0"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret" validate:"required"`
}

type IdentityConfig struct {
	CookieName string        `mapstructure:"cookie_name" validate:"required"`
	Secret     string        `mapstructure:"secret" validate:"required"`
	MaxAge     time.Duration `mapstructure:"max_age" validate:"gt=0"`
	Secure     bool          `mapstructure:"secure"`
}

type StorageConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type InvitationConfig struct {
	Title            string `mapstructure:"title" validate:"required"`
	Description      string `mapstructure:"description"`
	Location         string `mapstructure:"location" validate:"required"`
	Start            string `mapstructure:"start" validate:"required,len=15"`
	End              string `mapstructure:"end" validate:"required,len=15"`
	RRule            string `mapstructure:"rrule"`
	AlarmTrigger     string `mapstructure:"alarm_trigger"`
	AlarmDescription string `mapstructure:"alarm_description"`
	ICSFilename      string `mapstructure:"ics_filename" validate:"required"`
	MapsURL          string `mapstructure:"maps_url" validate:"required,url"`
	ShareMessage     string `mapstructure:"share_message" validate:"required"`
	MusicURL         string `mapstructure:"music_url"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", ":8080")
	v.SetDefault("db.source", "")
	v.SetDefault("db.connect_timeout", 5*time.Second)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("identity.cookie_name", "device_token")
	v.SetDefault("identity.secret", "")
	v.SetDefault("identity.secure", false)
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("identity.max_age", 365*24*time.Hour)
	v.SetDefault("storage.path", "./data")
	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("invitation.title", "Fiesta Toy Story – Elián cumple 3 años")
	v.SetDefault("invitation.description", "Ven a celebrar con nosotros en una fiesta temática Toy Story 🎉🎂")
	v.SetDefault("invitation.location", "Salón Los Faroles, Huamantla, Tlaxcala")
	v.SetDefault("invitation.start", "20250830T170000")
	v.SetDefault("invitation.end", "20250830T200000")
	v.SetDefault("invitation.rrule", "FREQ=DAILY;COUNT=3")
	v.SetDefault("invitation.alarm_trigger", "-P2D")
	v.SetDefault("invitation.alarm_description", "Recordatorio - Fiesta Toy Story")
	v.SetDefault("invitation.ics_filename", "toy-story-fiesta.ics")
	v.SetDefault("invitation.maps_url", "https://maps.app.goo.gl/PMh236nWYhjdWSTA8")
	v.SetDefault("invitation.music_url", "")
	v.SetDefault("invitation.share_message", "¡Estás invitado a la fiesta Toy Story de Elián! 🎉 Más info: https://tuinvitacion.com")
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath("./configs")
	v.AddConfigPath("/configs")
	v.SetConfigName("settings")
	v.SetConfigType("yml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}
