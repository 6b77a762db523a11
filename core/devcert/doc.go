// Package devcert provisions TLS certificates for local development.
//
// A Manager either loads a provided certificate/key pair or generates a
// self-signed certificate covering the requested hosts. Generated certificates
// are stored in an autocert.Cache (a directory by default) and reused while
// they cover every requested host and are not close to expiry.
//
//	m, err := devcert.NewManager(devcert.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	tlsConfig, err := m.Provide(ctx, []string{"localhost", "127.0.0.1"})
//
// Browsers will not trust a generated certificate until it is added to the
// system trust store. The cached bundle (private key followed by the
// certificate, PEM encoded) can be imported from the cache directory.
package devcert
