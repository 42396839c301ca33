package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds a host and port. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses command-line flags into a config layer.
//
// Flags:
//
//	-a server listen address [host]:port
//	-u cloud API base URL used by the client
//	-client-id client id the client bootstraps with
//	-db-driver local store driver (sqlite, bolt)
//	-db-dsn local store path
//	-d server PostgreSQL URI
//	-blob-driver snapshot blob driver (postgres, s3, memory)
//	-s3-bucket, -s3-region, -s3-endpoint, -s3-path-style S3 settings
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-access-token-duration access token lifetime (e.g. "15m")
//	-refresh-token-duration refresh grant lifetime (e.g. "720h")
//	-client-ids comma separated list of accepted client ids
//	-request-timeout request timeout of both binaries (e.g. "30s")
//	-push-debounce quiet period before a push (e.g. "5s")
//	-startup-delay minimum cold start delay (e.g. "1.2s")
//	-log-file client log file
func ParseFlags() (*StructuredConfig, error) {
	var serverAddress NetAddress
	var adapterAddress, clientID string
	var dbDriver, dbDSN, databaseURI string
	var blobDriver, s3Bucket, s3Region, s3Endpoint string
	var s3PathStyle bool
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer, clientIDs string
	var accessTokenDuration, refreshTokenDuration time.Duration
	var requestTimeout, pushDebounce, startupDelay time.Duration
	var logFile string

	fs := flag.CommandLine
	fs.Var(&serverAddress, "a", "Server net address host:port")
	fs.StringVar(&adapterAddress, "u", "", "Cloud API base URL")
	fs.StringVar(&clientID, "client-id", "", "Client id")
	fs.StringVar(&dbDriver, "db-driver", "", "Local store driver (sqlite, bolt)")
	fs.StringVar(&dbDSN, "db-dsn", "", "Local store path")
	fs.StringVar(&databaseURI, "d", "", "Server database URI")
	fs.StringVar(&blobDriver, "blob-driver", "", "Snapshot blob driver (postgres, s3, memory)")
	fs.StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket")
	fs.StringVar(&s3Region, "s3-region", "", "S3 region")
	fs.StringVar(&s3Endpoint, "s3-endpoint", "", "S3 endpoint override")
	fs.BoolVar(&s3PathStyle, "s3-path-style", false, "Use S3 path-style addressing")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&accessTokenDuration, "access-token-duration", 0, "Access token lifetime (e.g., 15m)")
	fs.DurationVar(&refreshTokenDuration, "refresh-token-duration", 0, "Refresh grant lifetime (e.g., 720h)")
	fs.StringVar(&clientIDs, "client-ids", "", "Accepted client ids, comma separated")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&pushDebounce, "push-debounce", 0, "Quiet period before a push (e.g., 5s)")
	fs.DurationVar(&startupDelay, "startup-delay", 0, "Minimum cold start delay (e.g., 1.2s)")
	fs.StringVar(&logFile, "log-file", "", "Client log file")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:         tokenSignKey,
			TokenIssuer:          tokenIssuer,
			AccessTokenDuration:  accessTokenDuration,
			RefreshTokenDuration: refreshTokenDuration,
			ClientIDs:            splitList(clientIDs),
		},
		Storage: Storage{
			DB: DB{
				Driver:      dbDriver,
				DSN:         dbDSN,
				DatabaseURI: databaseURI,
			},
			Blob: Blob{
				Driver: blobDriver,
				S3: S3{
					Bucket:    s3Bucket,
					Region:    s3Region,
					Endpoint:  s3Endpoint,
					PathStyle: s3PathStyle,
				},
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
			ClientID:       clientID,
		},
		Workers: Workers{
			PushDebounce: pushDebounce,
			StartupDelay: startupDelay,
		},
		Log:          Log{File: logFile},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns the host:port form of a, or "" when a is unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port into a. The host may be empty (all interfaces),
// "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
