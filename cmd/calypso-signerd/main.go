package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"calypsonet.org/certkit/archive"
	"calypsonet.org/certkit/keys"
	"calypsonet.org/certkit/remotesign"
)

func main() {
	fs := flag.NewFlagSet("calypso-signerd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7878", "listen address")
	keyFile := fs.String("key-file", "", "PEM file with the issuer RSA-2048 private key")
	keyRef := fs.String("key-ref", "", "issuer public key reference (58 hex chars)")
	archiveDir := fs.String("archive-dir", "", "optional directory to archive every signed certificate")

	_ = fs.Parse(os.Args[1:])
	if *keyFile == "" || *keyRef == "" {
		fmt.Fprintln(os.Stderr, "missing --key-file or --key-ref")
		os.Exit(2)
	}

	ref, err := hex.DecodeString(*keyRef)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --key-ref: %v\n", err)
		os.Exit(2)
	}
	pemBytes, err := os.ReadFile(*keyFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read --key-file: %v\n", err)
		os.Exit(2)
	}
	priv, err := keys.ParseRSAPrivateKeyPEM(pemBytes)
	keys.Wipe(pemBytes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --key-file: %v\n", err)
		os.Exit(2)
	}

	signer, err := keys.NewInternalSigner(priv, ref)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer signer.Close()

	srv := &remotesign.Server{Signer: signer}
	if *archiveDir != "" {
		store, err := archive.NewFS(*archiveDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open --archive-dir: %v\n", err)
			os.Exit(2)
		}
		srv.Archive = store
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	remotesign.RegisterSignerServer(s, srv)

	fmt.Fprintf(os.Stderr, "calypso-signerd listening on %s (key-ref=%s)\n", lis.Addr().String(), *keyRef)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
