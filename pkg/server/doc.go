// Package server provides the HTTP server for the hydra REST API.
//
// Every request passes through the request id, metrics and access log
// middleware. Routes registered on API additionally require a bearer token
// and are rate limited per caller:
//
//	srv := server.NewServer(svc, signer, config.Get, log, "0.0.0.0", "8080")
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// Public routes are /status and /metrics.
package server
