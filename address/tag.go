package address

// BinaryTag is the numeric tag the ledger's value encoding attaches to a
// byte string to mark it as a typed identifier.
type BinaryTag uint64

const (
	TagComponentAddress   BinaryTag = 128
	TagMetadata           BinaryTag = 129
	TagNonFungibleAddress BinaryTag = 130
	TagResourceAddress    BinaryTag = 131
	TagVaultID            BinaryTag = 132
	TagTransactionReceipt BinaryTag = 134
	TagFeeClaim           BinaryTag = 135
)

// addressTags lists the tags whose byte payload is a plain address payload.
// Metadata and non-fungible addresses carry structured payloads and are
// left to the caller.
var addressTags = map[BinaryTag]Kind{
	TagComponentAddress:   Component,
	TagResourceAddress:    Resource,
	TagVaultID:            Vault,
	TagTransactionReceipt: TransactionReceipt,
	TagFeeClaim:           FeeClaim,
}

// KindForTag returns the address kind denoted by tag when its payload is a
// plain address payload.
func KindForTag(tag BinaryTag) (Kind, bool) {
	k, ok := addressTags[tag]
	return k, ok
}

// TagForKind is the inverse of KindForTag.
func TagForKind(kind Kind) (BinaryTag, bool) {
	for t, k := range addressTags {
		if k == kind {
			return t, true
		}
	}
	return 0, false
}
