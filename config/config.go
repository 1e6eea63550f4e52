// Package config contains the configuration of the server
package config

// DevEnv denotes the enviroment the server is running in
type DevEnv string

const (
	// Prod defines the production enviroment
	Prod DevEnv = "PROD"
	// Dev defines the development enviroment
	Dev DevEnv = "DEV"
	// Test defines the test enviroment
	Test DevEnv = "TEST"
)

// GetDevEnv is a function to get the enviroment the server is running in based
// on the enviroment configuration
func GetDevEnv(env *Env) DevEnv {
	switch env.DevEnv {
	case string(Prod):
		return Prod
	case string(Dev):
		return Dev
	default:
		return Test
	}
}
