package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medport/medport/internal/api"
	"github.com/medport/medport/internal/config"
	"github.com/medport/medport/internal/log"
	"github.com/medport/medport/internal/session"
	"github.com/medport/medport/internal/tokenstore"
)

// tokenPassphrase keys the at-rest encryption of the credential file. It is
// fixed per application, the same trust model a browser's local storage has.
const tokenPassphrase = "medport-cli"

var (
	appConfig  *config.Config
	appLogger  *log.Logger
	appClient  *api.Client
	appTokens  *tokenstore.Store
	appSession *session.Manager
)

// initApp resolves configuration and sets up logging. It runs once before any
// command; the remaining dependencies are built lazily by their getters.
func initApp() error {
	if appConfig != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	appConfig = cfg

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	logCfg.Format = log.ParseFormat(cfg.LogFormat)
	if verbose {
		logCfg.Level = log.LevelDebug
	}
	appLogger = log.New(logCfg)
	log.SetDefaultLogger(appLogger)

	return nil
}

// getClient returns the shared API client
func getClient() *api.Client {
	if appClient == nil {
		appClient = api.NewClient(appConfig.APIURL, api.WithTimeout(appConfig.Timeout()))
	}
	return appClient
}

// getTokenStore returns the shared credential store
func getTokenStore() (*tokenstore.Store, error) {
	if appTokens == nil {
		store, err := tokenstore.New(appConfig.CredentialsPath, tokenPassphrase)
		if err != nil {
			return nil, fmt.Errorf("open credential store: %w", err)
		}
		appTokens = store
	}
	return appTokens, nil
}

// getSessionManager returns the shared session manager
func getSessionManager() (*session.Manager, error) {
	if appSession == nil {
		store, err := getTokenStore()
		if err != nil {
			return nil, err
		}
		appSession = session.NewManager(getClient(), store, appLogger)
	}
	return appSession, nil
}

// errNotLoggedIn is what commands return when no session can be established
var errNotLoggedIn = errors.New("not logged in, run 'medport auth login' first")

// requirePatient resolves the session and insists on a patient with a known
// profile id.
func requirePatient(cmd *cobra.Command) (*session.Session, error) {
	s, err := requireSession(cmd)
	if err != nil {
		return nil, err
	}
	if !s.IsPatient() {
		return nil, errors.New("this command is only available to patients")
	}
	if s.PatientID == nil {
		return nil, errors.New("patient profile could not be loaded, try again")
	}
	return s, nil
}

// requireSession resolves the session and fails when there is none
func requireSession(cmd *cobra.Command) (*session.Session, error) {
	mgr, err := getSessionManager()
	if err != nil {
		return nil, err
	}
	s := mgr.Ensure(cmd.Context())
	if s == nil {
		return nil, errNotLoggedIn
	}
	return s, nil
}
