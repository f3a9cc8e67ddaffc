package registry

import "strings"

// ACBFlags is the 16-bit account control field stored in a SAM F value.
type ACBFlags uint16

const (
	ACBDisabled             ACBFlags = 0x0001
	ACBHomeDirRequired      ACBFlags = 0x0002
	ACBPasswordNotRequired  ACBFlags = 0x0004
	ACBTempDuplicate        ACBFlags = 0x0008
	ACBNormal               ACBFlags = 0x0010
	ACBMNSLogon             ACBFlags = 0x0020
	ACBInterdomainTrust     ACBFlags = 0x0040
	ACBWorkstationTrust     ACBFlags = 0x0080
	ACBServerTrust          ACBFlags = 0x0100
	ACBPasswordNeverExpires ACBFlags = 0x0200
	ACBAutoLocked           ACBFlags = 0x0400
	ACBEncryptedTextAllowed ACBFlags = 0x0800
	ACBSmartcardRequired    ACBFlags = 0x1000
	ACBTrustedForDelegation ACBFlags = 0x2000
	ACBNotDelegated         ACBFlags = 0x4000
	ACBUseDESKeyOnly        ACBFlags = 0x8000
)

var acbNames = [...]struct {
	flag ACBFlags
	name string
}{
	{ACBDisabled, "Account Disabled"},
	{ACBHomeDirRequired, "Home directory required"},
	{ACBPasswordNotRequired, "Password not required"},
	{ACBTempDuplicate, "Temporary duplicate account"},
	{ACBNormal, "Normal user account"},
	{ACBMNSLogon, "MNS logon user account"},
	{ACBInterdomainTrust, "Interdomain trust account"},
	{ACBWorkstationTrust, "Workstation trust account"},
	{ACBServerTrust, "Server trust account"},
	{ACBPasswordNeverExpires, "Password does not expire"},
	{ACBAutoLocked, "Account auto locked"},
	{ACBEncryptedTextAllowed, "Encrypted text password allowed"},
	{ACBSmartcardRequired, "Smart card required"},
	{ACBTrustedForDelegation, "Trusted for delegation"},
	{ACBNotDelegated, "Not delegated"},
	{ACBUseDESKeyOnly, "Use DES key only"},
}

// Has reports whether every bit of flag is set.
func (f ACBFlags) Has(flag ACBFlags) bool { return f&flag == flag }

// Names lists the set flags in bit order.
func (f ACBFlags) Names() []string {
	var out []string
	for _, n := range acbNames {
		if f.Has(n.flag) {
			out = append(out, n.name)
		}
	}
	return out
}

func (f ACBFlags) String() string {
	return strings.Join(f.Names(), ", ")
}
