package config

import "os"

func IsDebug() bool {
	return os.Getenv("VELA_DEBUG") == "1"
}
