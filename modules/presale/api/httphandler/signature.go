package httphandler

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gaze-network/presale-ledger/common/errs"
)

// maxSignatureLifetime bounds how far ahead of now a signed request may expire.
const maxSignatureLifetime = 15 * time.Minute

const (
	codeInvalidSignature = "INVALID_SIGNATURE"
	codeSignatureExpired = "SIGNATURE_EXPIRED"
)

// signedRequest is a buyer call authorized by an EIP-191 personal signature of the
// buyer over its canonical message.
type signedRequest struct {
	action    string
	buyer     common.Address
	fields    []string
	deadline  int64
	signature string
}

// message is the text the buyer signs, for example
// "presale:<sale>:purchase:<buyer>:quote:10:0:1709254800".
func (r signedRequest) message(sale common.Address) string {
	parts := make([]string, 0, len(r.fields)+5)
	parts = append(parts, "presale", strings.ToLower(sale.Hex()), r.action, strings.ToLower(r.buyer.Hex()))
	parts = append(parts, r.fields...)
	parts = append(parts, strconv.FormatInt(r.deadline, 10))
	return strings.Join(parts, ":")
}

// textHash is the EIP-191 personal_sign digest of message.
func textHash(message string) []byte {
	return crypto.Keccak256([]byte("\x19Ethereum Signed Message:\n" + strconv.Itoa(len(message)) + message))
}

// signatureGuard authenticates buyer requests and rejects replays until the
// signed deadline passes.
type signatureGuard struct {
	now func() time.Time

	mu sync.Mutex
	// used holds the digest of every accepted request with its deadline
	used map[common.Hash]int64
}

func newSignatureGuard(now func() time.Time) *signatureGuard {
	return &signatureGuard{
		now:  now,
		used: make(map[common.Hash]int64),
	}
}

func (g *signatureGuard) verify(sale common.Address, req signedRequest) error {
	now := g.now().Unix()
	if req.deadline < now {
		return errs.NewPublicErrorWithCode("signature expired", codeSignatureExpired)
	}
	if req.deadline > now+int64(maxSignatureLifetime/time.Second) {
		return errs.NewPublicErrorWithCode("'deadline' is too far in the future", codeInvalidSignature)
	}
	sig, err := hexutil.Decode(req.signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return errs.NewPublicErrorWithCode("'signature' must be 65 hex-encoded bytes", codeInvalidSignature)
	}
	// wallets encode the recovery id as 27 or 28
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	digest := textHash(req.message(sale))
	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return errs.WithPublicMessageCode(errors.WithStack(err), "invalid signature", codeInvalidSignature)
	}
	if signer := crypto.PubkeyToAddress(*pub); signer != req.buyer {
		return errs.NewPublicErrorWithCode("signature does not match buyer", codeInvalidSignature)
	}

	key := common.BytesToHash(digest)
	g.mu.Lock()
	defer g.mu.Unlock()
	for used, deadline := range g.used {
		if deadline < now {
			delete(g.used, used)
		}
	}
	if _, ok := g.used[key]; ok {
		return errs.NewPublicErrorWithCode("signature already used", codeInvalidSignature)
	}
	g.used[key] = req.deadline
	return nil
}
