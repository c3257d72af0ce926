package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"calypsonet.org/certkit/certfmt"
	"calypsonet.org/certkit/certid"
	"calypsonet.org/certkit/issue"
	"calypsonet.org/certkit/keys"
	"calypsonet.org/certkit/remotesign"
	"calypsonet.org/certkit/truststore"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "inspect":
		return cmdInspect(args[1:], out, errOut)
	case "cert-cid":
		return cmdCertCID(args[1:], out, errOut)
	case "verify":
		return cmdVerify(args[1:], out, errOut)
	case "issue-ca":
		return cmdIssueCa(args[1:], out, errOut)
	case "issue-card":
		return cmdIssueCard(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "calypso-certkit: Calypso certificate toolkit CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  calypso-certkit inspect [--issuer-key <pub.pem>] <cert-file>")
	fmt.Fprintln(w, "  calypso-certkit cert-cid <cert-file>")
	fmt.Fprintln(w, "  calypso-certkit verify --pca-key <pub.pem> --pca-ref <58hex> [--ca <file> ...] [--at <YYYYMMDD>] <cert-file>")
	fmt.Fprintln(w, "  calypso-certkit issue-ca (--key-file <priv.pem> --key-ref <58hex> | --remote <addr>) --subject-key <pub.pem> --subject-ref <58hex> [--start <YYYYMMDD>] [--end <YYYYMMDD>] [--aid <hex>] [--card-right r] [--ca-right r] [--scope s] [--allow-truncation] [--out <file>]")
	fmt.Fprintln(w, "  calypso-certkit issue-card (--key-file <priv.pem> --key-ref <58hex> | --remote <addr>) --card-key <128hex> --aid <hex> --serial <16hex> --startup <14hex> [--index <n>] [--start <YYYYMMDD>] [--end <YYYYMMDD>] [--out <file>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - key references are 29 bytes (58 hex chars)")
	fmt.Fprintln(w, "  - rights are one of: unspecified, forbidden, allowed; scope is one of: unspecified, limited, full")
	fmt.Fprintln(w, "  - an omitted or 00000000 date leaves that validity bound open")
	fmt.Fprintln(w, "  - --ca files are loaded root first, leaf last")
	fmt.Fprintln(w, "  - issued certificates are written as raw bytes (stdout without --out)")
}

func cmdInspect(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var issuerKeyPath string
	fs.StringVar(&issuerKeyPath, "issuer-key", "", "Issuer RSA public key PEM (recovers the hidden part)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: calypso-certkit inspect [--issuer-key <pub.pem>] <cert-file>")
		return 2
	}
	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read certificate: %v\n", err)
		return 1
	}

	switch len(raw) {
	case certfmt.CaCertificateSize:
		return inspectCa(raw, issuerKeyPath, out, errOut)
	case certfmt.CardCertificateSize:
		return inspectCard(raw, issuerKeyPath, out, errOut)
	default:
		fmt.Fprintf(errOut, "unrecognized certificate size %d (expected %d or %d)\n",
			len(raw), certfmt.CaCertificateSize, certfmt.CardCertificateSize)
		return 1
	}
}

func inspectCa(raw []byte, issuerKeyPath string, out io.Writer, errOut io.Writer) int {
	data, _, err := certfmt.SplitCaRaw(raw)
	if err != nil {
		fmt.Fprintf(errOut, "invalid certificate: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, "Type: CA certificate (version 1)")
	fmt.Fprintf(out, "CID: %s\n", certid.ForCertificate(raw))

	recoverable, code := recoverFor(raw, issuerKeyPath, certfmt.SplitCaRaw, errOut)
	if code != 0 {
		return code
	}
	if recoverable == nil {
		issuer, err := certfmt.PeekIssuerReference(data)
		if err != nil {
			fmt.Fprintf(errOut, "invalid certificate: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "Issuer-Key-Ref: %s\n", issuer)
		fmt.Fprintln(out, "(pass --issuer-key to verify the signature and list all fields)")
		return 0
	}

	f, err := certfmt.DecodeCa(data, recoverable)
	if err != nil {
		fmt.Fprintf(errOut, "invalid certificate: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Issuer-Key-Ref: %s\n", f.IssuerKeyRef)
	fmt.Fprintf(out, "Target-Key-Ref: %s\n", f.TargetKeyRef)
	printValidity(out, f.Validity)
	printAid(out, f.Aid)
	fmt.Fprintf(out, "Card-Cert-Right: %s\n", rightName(f.Rights.CardCertRight()))
	fmt.Fprintf(out, "CA-Cert-Right: %s\n", rightName(f.Rights.CaCertRight()))
	fmt.Fprintf(out, "Scope: %s\n", scopeName(f.Scope))
	fmt.Fprintf(out, "AID-Truncation: %v\n", f.OperatingMode.TruncationAllowed())
	fmt.Fprintf(out, "Subject-Modulus: %s\n", hex.EncodeToString(f.RsaModulus[:]))
	return 0
}

func inspectCard(raw []byte, issuerKeyPath string, out io.Writer, errOut io.Writer) int {
	data, _, err := certfmt.SplitCardRaw(raw)
	if err != nil {
		fmt.Fprintf(errOut, "invalid certificate: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, "Type: card certificate (version 1)")
	fmt.Fprintf(out, "CID: %s\n", certid.ForCertificate(raw))

	recoverable, code := recoverFor(raw, issuerKeyPath, certfmt.SplitCardRaw, errOut)
	if code != 0 {
		return code
	}
	if recoverable == nil {
		issuer, err := certfmt.PeekIssuerReference(data)
		if err != nil {
			fmt.Fprintf(errOut, "invalid certificate: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "Issuer-Key-Ref: %s\n", issuer)
		fmt.Fprintln(out, "(pass --issuer-key to verify the signature and list all fields)")
		return 0
	}

	f, err := certfmt.DecodeCard(data, recoverable)
	if err != nil {
		fmt.Fprintf(errOut, "invalid certificate: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Issuer-Key-Ref: %s\n", f.IssuerKeyRef)
	printAid(out, f.Aid)
	fmt.Fprintf(out, "Serial: %s\n", hex.EncodeToString(f.SerialNumber[:]))
	fmt.Fprintf(out, "Index: %d\n", f.Index)
	printValidity(out, f.Validity)
	fmt.Fprintf(out, "Startup-Info: %s\n", hex.EncodeToString(f.StartupInfo[:]))
	fmt.Fprintf(out, "Card-Public-Key: %s\n", hex.EncodeToString(f.EccPublicKey[:]))
	return 0
}

// recoverFor returns nil without an error when no issuer key was given.
func recoverFor(raw []byte, issuerKeyPath string, split func([]byte) ([]byte, []byte, error), errOut io.Writer) ([]byte, int) {
	if issuerKeyPath == "" {
		return nil, 0
	}
	pemBytes, err := os.ReadFile(issuerKeyPath)
	if err != nil {
		fmt.Fprintf(errOut, "read --issuer-key: %v\n", err)
		return nil, 1
	}
	pub, err := keys.ParseRSAPublicKeyPEM(pemBytes)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --issuer-key: %v\n", err)
		return nil, 2
	}
	data, sig, err := split(raw)
	if err != nil {
		fmt.Fprintf(errOut, "invalid certificate: %v\n", err)
		return nil, 1
	}
	recoverable, err := keys.RecoverMessage(pub, data, sig)
	if err != nil {
		fmt.Fprintf(errOut, "signature: %v\n", err)
		return nil, 1
	}
	return recoverable, 0
}

func cmdCertCID(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("cert-cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: calypso-certkit cert-cid <cert-file>")
		return 2
	}
	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read certificate: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, certid.ForCertificate(raw))
	return 0
}

func cmdVerify(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var pcaKeyPath string
	var pcaRefHex string
	var caPaths stringList
	var atDate string

	fs.StringVar(&pcaKeyPath, "pca-key", "", "PCA RSA public key PEM")
	fs.StringVar(&pcaRefHex, "pca-ref", "", "PCA public key reference (58 hex chars)")
	fs.Var(&caPaths, "ca", "Intermediate CA certificate file, root first (repeatable)")
	fs.StringVar(&atDate, "at", "", "Verification date as YYYYMMDD (defaults to today)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if pcaKeyPath == "" || pcaRefHex == "" {
		fmt.Fprintln(errOut, "missing --pca-key or --pca-ref")
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: calypso-certkit verify --pca-key <pub.pem> --pca-ref <58hex> [--ca <file> ...] <cert-file>")
		return 2
	}

	now := time.Now()
	if atDate != "" {
		t, err := time.Parse("20060102", atDate)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --at (expected YYYYMMDD): %v\n", err)
			return 2
		}
		now = t
	}

	pemBytes, err := os.ReadFile(pcaKeyPath)
	if err != nil {
		fmt.Fprintf(errOut, "read --pca-key: %v\n", err)
		return 1
	}
	pub, err := keys.ParseRSAPublicKeyPEM(pemBytes)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --pca-key: %v\n", err)
		return 2
	}
	ref, err := hex.DecodeString(pcaRefHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --pca-ref: %v\n", err)
		return 2
	}

	store := truststore.New()
	if _, err := store.AddPcaPublicKey(ref, pub); err != nil {
		fmt.Fprintf(errOut, "pca: %v\n", err)
		return 2
	}
	for _, p := range caPaths {
		raw, rerr := os.ReadFile(p)
		if rerr != nil {
			fmt.Fprintf(errOut, "read --ca %s: %v\n", p, rerr)
			return 1
		}
		if _, aerr := store.AddCaCertificateBytes(raw, nil); aerr != nil {
			fmt.Fprintf(errOut, "untrusted: %s: %v\n", p, aerr)
			return 1
		}
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read certificate: %v\n", err)
		return 1
	}
	switch len(raw) {
	case certfmt.CaCertificateSize:
		f, verr := store.VerifyCaCertificate(raw, now)
		if verr != nil {
			fmt.Fprintf(errOut, "invalid: %v\n", verr)
			return 1
		}
		fmt.Fprintf(out, "OK ca target=%s\n", f.TargetKeyRef)
	case certfmt.CardCertificateSize:
		f, verr := store.VerifyCardCertificate(raw, now)
		if verr != nil {
			fmt.Fprintf(errOut, "invalid: %v\n", verr)
			return 1
		}
		fmt.Fprintf(out, "OK card serial=%s\n", hex.EncodeToString(f.SerialNumber[:]))
	default:
		fmt.Fprintf(errOut, "unrecognized certificate size %d\n", len(raw))
		return 1
	}
	return 0
}

func cmdIssueCa(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("issue-ca", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var keyFile, keyRef, remote string
	var subjectKeyPath, subjectRefHex string
	var startStr, endStr, aidHex string
	var cardRight, caRight, scope string
	var allowTruncation bool
	var outPath string

	fs.StringVar(&keyFile, "key-file", "", "Issuer RSA private key PEM")
	fs.StringVar(&keyRef, "key-ref", "", "Issuer public key reference (58 hex chars)")
	fs.StringVar(&remote, "remote", "", "Remote signer address (calypso-signerd)")
	fs.StringVar(&subjectKeyPath, "subject-key", "", "Subject CA RSA public key PEM")
	fs.StringVar(&subjectRefHex, "subject-ref", "", "Subject public key reference (58 hex chars)")
	fs.StringVar(&startStr, "start", "", "Validity start as YYYYMMDD")
	fs.StringVar(&endStr, "end", "", "Validity end as YYYYMMDD")
	fs.StringVar(&aidHex, "aid", "", "Target AID in hex (5 to 16 bytes)")
	fs.StringVar(&cardRight, "card-right", "unspecified", "Card certificate issuing right")
	fs.StringVar(&caRight, "ca-right", "unspecified", "CA certificate issuing right")
	fs.StringVar(&scope, "scope", "unspecified", "CA scope")
	fs.BoolVar(&allowTruncation, "allow-truncation", false, "Accept truncated AIDs in child certificates")
	fs.StringVar(&outPath, "out", "", "Output file (defaults to stdout)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if subjectKeyPath == "" || subjectRefHex == "" {
		fmt.Fprintln(errOut, "missing --subject-key or --subject-ref")
		return 2
	}

	signer, closeFn, code := signerFromFlags(keyFile, keyRef, remote, errOut)
	if code != 0 {
		return code
	}
	defer closeFn()

	pemBytes, err := os.ReadFile(subjectKeyPath)
	if err != nil {
		fmt.Fprintf(errOut, "read --subject-key: %v\n", err)
		return 1
	}
	pub, err := keys.ParseRSAPublicKeyPEM(pemBytes)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --subject-key: %v\n", err)
		return 2
	}
	subjectRef, err := hex.DecodeString(subjectRefHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --subject-ref: %v\n", err)
		return 2
	}

	req := &issue.CaRequest{
		CaPublicKey:          pub,
		CaPublicKeyReference: subjectRef,
	}
	if req.StartDate, code = parseDateFlag(startStr, "--start", errOut); code != 0 {
		return code
	}
	if req.EndDate, code = parseDateFlag(endStr, "--end", errOut); code != 0 {
		return code
	}
	if aidHex != "" {
		req.Aid, err = hex.DecodeString(aidHex)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --aid: %v\n", err)
			return 2
		}
	}
	card, code := parseRight(cardRight, "--card-right", errOut)
	if code != 0 {
		return code
	}
	ca, code := parseRight(caRight, "--ca-right", errOut)
	if code != 0 {
		return code
	}
	req.CaRights = certfmt.NewCaRights(card, ca)
	if req.CaScope, code = parseScope(scope, errOut); code != 0 {
		return code
	}
	if allowTruncation {
		req.CaOperatingMode = certfmt.OperatingModeTruncation
	}

	cert, err := issue.BuildCa(req, signer)
	if err != nil {
		fmt.Fprintf(errOut, "issue-ca: %v\n", err)
		return 1
	}
	return writeCert(cert.RawData(), outPath, out, errOut)
}

func cmdIssueCard(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("issue-card", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var keyFile, keyRef, remote string
	var cardKeyHex, aidHex, serialHex, startupHex string
	var startStr, endStr string
	var index uint
	var outPath string

	fs.StringVar(&keyFile, "key-file", "", "Issuer RSA private key PEM")
	fs.StringVar(&keyRef, "key-ref", "", "Issuer public key reference (58 hex chars)")
	fs.StringVar(&remote, "remote", "", "Remote signer address (calypso-signerd)")
	fs.StringVar(&cardKeyHex, "card-key", "", "Card secp256r1 public key, raw X||Y (128 hex chars)")
	fs.StringVar(&aidHex, "aid", "", "Card AID in hex (5 to 16 bytes)")
	fs.StringVar(&serialHex, "serial", "", "Card serial number (16 hex chars)")
	fs.StringVar(&startupHex, "startup", "", "Card startup info (14 hex chars)")
	fs.StringVar(&startStr, "start", "", "Validity start as YYYYMMDD")
	fs.StringVar(&endStr, "end", "", "Validity end as YYYYMMDD")
	fs.UintVar(&index, "index", 0, "Certificate index for the card")
	fs.StringVar(&outPath, "out", "", "Output file (defaults to stdout)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if cardKeyHex == "" || aidHex == "" || serialHex == "" || startupHex == "" {
		fmt.Fprintln(errOut, "missing one of --card-key, --aid, --serial, --startup")
		return 2
	}

	signer, closeFn, code := signerFromFlags(keyFile, keyRef, remote, errOut)
	if code != 0 {
		return code
	}
	defer closeFn()

	req := &issue.CardRequest{Index: uint32(index)}
	var err error
	if req.CardPublicKey, err = hex.DecodeString(cardKeyHex); err != nil {
		fmt.Fprintf(errOut, "invalid --card-key: %v\n", err)
		return 2
	}
	if req.Aid, err = hex.DecodeString(aidHex); err != nil {
		fmt.Fprintf(errOut, "invalid --aid: %v\n", err)
		return 2
	}
	if req.SerialNumber, err = hex.DecodeString(serialHex); err != nil {
		fmt.Fprintf(errOut, "invalid --serial: %v\n", err)
		return 2
	}
	if req.StartupInfo, err = hex.DecodeString(startupHex); err != nil {
		fmt.Fprintf(errOut, "invalid --startup: %v\n", err)
		return 2
	}
	if req.StartDate, code = parseDateFlag(startStr, "--start", errOut); code != 0 {
		return code
	}
	if req.EndDate, code = parseDateFlag(endStr, "--end", errOut); code != 0 {
		return code
	}

	cert, err := issue.BuildCard(req, signer)
	if err != nil {
		fmt.Fprintf(errOut, "issue-card: %v\n", err)
		return 1
	}
	return writeCert(cert.RawData(), outPath, out, errOut)
}

func signerFromFlags(keyFile, keyRef, remote string, errOut io.Writer) (keys.CertificateSigner, func(), int) {
	if remote != "" {
		if keyFile != "" || keyRef != "" {
			fmt.Fprintln(errOut, "conflicting signer flags: --remote cannot be combined with --key-file or --key-ref")
			return nil, nil, 2
		}
		client, err := remotesign.Dial(remote, remotesign.DialOptions{})
		if err != nil {
			fmt.Fprintf(errOut, "remote signer: %v\n", err)
			return nil, nil, 1
		}
		return client, func() { _ = client.Close() }, 0
	}
	if keyFile == "" || keyRef == "" {
		fmt.Fprintln(errOut, "missing signer: use --key-file with --key-ref, or --remote")
		return nil, nil, 2
	}
	ref, err := hex.DecodeString(keyRef)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --key-ref: %v\n", err)
		return nil, nil, 2
	}
	pemBytes, err := os.ReadFile(keyFile)
	if err != nil {
		fmt.Fprintf(errOut, "read --key-file: %v\n", err)
		return nil, nil, 1
	}
	priv, err := keys.ParseRSAPrivateKeyPEM(pemBytes)
	keys.Wipe(pemBytes)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --key-file: %v\n", err)
		return nil, nil, 2
	}
	signer, err := keys.NewInternalSigner(priv, ref)
	if err != nil {
		fmt.Fprintf(errOut, "signer: %v\n", err)
		return nil, nil, 2
	}
	return signer, signer.Close, 0
}

func parseDateFlag(s, name string, errOut io.Writer) (certfmt.Date, int) {
	if s == "" || s == "00000000" {
		return certfmt.Date{}, 0
	}
	if len(s) != 8 {
		fmt.Fprintf(errOut, "invalid %s (expected YYYYMMDD)\n", name)
		return certfmt.Date{}, 2
	}
	year, err1 := strconv.Atoi(s[:4])
	month, err2 := strconv.Atoi(s[4:6])
	day, err3 := strconv.Atoi(s[6:8])
	if err1 != nil || err2 != nil || err3 != nil {
		fmt.Fprintf(errOut, "invalid %s (expected YYYYMMDD)\n", name)
		return certfmt.Date{}, 2
	}
	d, err := certfmt.NewDateStrict(year, month, day)
	if err != nil {
		fmt.Fprintf(errOut, "invalid %s: %v\n", name, err)
		return certfmt.Date{}, 2
	}
	return d, 0
}

func parseRight(s, name string, errOut io.Writer) (certfmt.AuthRight, int) {
	switch s {
	case "", "unspecified":
		return certfmt.RightNotSpecified, 0
	case "forbidden":
		return certfmt.RightForbidden, 0
	case "allowed":
		return certfmt.RightAllowed, 0
	default:
		fmt.Fprintf(errOut, "invalid %s (expected unspecified, forbidden or allowed)\n", name)
		return certfmt.RightNotSpecified, 2
	}
}

func parseScope(s string, errOut io.Writer) (certfmt.CaScope, int) {
	switch s {
	case "", "unspecified":
		return certfmt.ScopeNotSpecified, 0
	case "limited":
		return certfmt.ScopeLimited, 0
	case "full":
		return certfmt.ScopeFull, 0
	default:
		fmt.Fprintln(errOut, "invalid --scope (expected unspecified, limited or full)")
		return certfmt.ScopeNotSpecified, 2
	}
}

func writeCert(raw []byte, outPath string, out io.Writer, errOut io.Writer) int {
	if outPath == "" {
		_, _ = out.Write(raw)
		return 0
	}
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		fmt.Fprintf(errOut, "write --out: %v\n", err)
		return 1
	}
	fmt.Fprintf(errOut, "wrote %d bytes to %s\n", len(raw), outPath)
	return 0
}

func printValidity(out io.Writer, p certfmt.ValidityPeriod) {
	fmt.Fprintf(out, "Valid-From: %s\n", dateString(p.Start))
	fmt.Fprintf(out, "Valid-Until: %s\n", dateString(p.End))
}

func printAid(out io.Writer, aid []byte) {
	if aid == nil {
		fmt.Fprintln(out, "AID: (unconstrained)")
		return
	}
	fmt.Fprintf(out, "AID: %s\n", hex.EncodeToString(aid))
}

func dateString(d certfmt.Date) string {
	if d.IsZero() {
		return "(open)"
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func rightName(r certfmt.AuthRight) string {
	switch r {
	case certfmt.RightForbidden:
		return "forbidden"
	case certfmt.RightAllowed:
		return "allowed"
	default:
		return "unspecified"
	}
}

func scopeName(s certfmt.CaScope) string {
	switch s {
	case certfmt.ScopeLimited:
		return "limited"
	case certfmt.ScopeFull:
		return "full"
	default:
		return "unspecified"
	}
}

type stringList []string

func (s *stringList) String() string { return "" }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
