package sensorthings

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

func TestLoadProfileOverridesDefaults(t *testing.T) {
	is := is.New(t)

	p, err := LoadProfile(bytes.NewBufferString(profileFile))
	is.NoErr(err)

	is.Equal(p.GeographyLiteral, "geography'%s'")
	is.Equal(p.LocationField, "location")
	is.Equal(p.SRIDPrefix, false)
	is.Equal(p.Precision, 7)
	is.Equal(p.ThingsPath, "Things")
}

func TestEmptyProfileIsTheDefault(t *testing.T) {
	is := is.New(t)

	p, err := LoadProfile(bytes.NewBufferString(""))
	is.NoErr(err)
	is.Equal(p, DefaultProfile())
}

func TestProfileWithBrokenLiteralIsRejected(t *testing.T) {
	is := is.New(t)

	_, err := LoadProfile(bytes.NewBufferString(`geographyLiteral: "geography'%s' %d"`))
	is.True(err != nil)

	_, err = LoadProfile(bytes.NewBufferString(`thingsPath: ""`))
	is.True(err != nil)
}

const profileFile string = `
locationField: location
sridPrefix: false
precision: 7
`
