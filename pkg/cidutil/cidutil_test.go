package cidutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Validate(t *testing.T) {
	require.NoError(t, Validate("QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"))
	require.NoError(t, Validate("bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"))

	require.Error(t, Validate(""))
	require.Error(t, Validate("not-a-cid"))
	require.Error(t, Validate("Qmshort"))
}
