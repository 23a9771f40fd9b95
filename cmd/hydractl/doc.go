// Command hydractl runs and administers a Hydra server.
//
// Hydra stores water resource models: projects holding networks, their
// scenarios and the datasets bound to each resource attribute.
//
// # Quick Start
//
//	export DATABASE_URL=postgres://hydra@localhost/hydra?sslmode=disable
//	export HYDRA_TOKEN_SECRET=$(openssl rand -hex 32)
//
//	# Create the schema
//	hydractl db migrate
//
//	# Create an administrator and a token for it
//	hydractl user create alice --role admin
//	hydractl token issue alice
//
//	# Start the server
//	hydractl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - HYDRA_TOKEN_SECRET: HMAC secret signing bearer tokens
//   - HYDRA_CONFIG_PATH: directory holding hydra.yml
//   - HYDRA_LOG_LEVEL, HYDRA_LOG_FORMAT and the other HYDRA_<ATTRIBUTE> overrides
//   - HYDRA_DEBUG: log SQL statements
//   - HYDRA_AUDIT_DATABASE_URL: persist audit events
//   - PORT, BIND_ADDRESS: server listen address (default 0.0.0.0:8000)
package main
