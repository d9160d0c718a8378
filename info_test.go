package main

import (
	"strings"
	"testing"

	"github.com/Lucop1911/vlsm/internal/assert"
)

const infoBlock = "" +
	"Network:     10.0.0.64/26\n" +
	"Netmask:     255.255.255.192\n" +
	"Wildcard:    0.0.0.63\n" +
	"Broadcast:   10.0.0.127\n" +
	"First host:  10.0.0.65\n" +
	"Last host:   10.0.0.126\n" +
	"Hosts:       62\n" +
	"Size:        64\n"

var infoTests = tests{
	"show the info command help with the short option": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "info", "-h")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tvlsm info ")
		assert.Equal(t, stderr, "")
	},

	"show the info command help with the long option": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "info", "--help")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tvlsm info ")
		assert.Equal(t, stderr, "")
	},

	"describe a network": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "info", "10.0.0.64/26")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, infoBlock)
		assert.Equal(t, stderr, "")
	},

	"host bits designate the containing network": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "info", "10.0.0.77/26")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, infoBlock)
		assert.Equal(t, stderr, "")
	},

	"describe several networks separated by a divider": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "info", "10.0.0.64/26", "192.168.1.0/24")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, infoBlock+
			strings.Repeat("-", 80)+"\n"+
			"Network:     192.168.1.0/24\n"+
			"Netmask:     255.255.255.0\n"+
			"Wildcard:    0.0.0.255\n"+
			"Broadcast:   192.168.1.255\n"+
			"First host:  192.168.1.1\n"+
			"Last host:   192.168.1.254\n"+
			"Hosts:       254\n"+
			"Size:        256\n")
		assert.Equal(t, stderr, "")
	},

	"describe a point-to-point pair": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "info", "192.0.2.0/31")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, ""+
			"Network:     192.0.2.0/31\n"+
			"Netmask:     255.255.255.254\n"+
			"Wildcard:    0.0.0.1\n"+
			"Broadcast:   192.0.2.1\n"+
			"First host:  192.0.2.0\n"+
			"Last host:   192.0.2.1\n"+
			"Hosts:       2\n"+
			"Size:        2\n")
		assert.Equal(t, stderr, "")
	},

	"describe a host route": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "info", "10.1.2.3/32")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, ""+
			"Network:     10.1.2.3/32\n"+
			"Netmask:     255.255.255.255\n"+
			"Wildcard:    0.0.0.0\n"+
			"Broadcast:   10.1.2.3\n"+
			"First host:  10.1.2.3\n"+
			"Last host:   10.1.2.3\n"+
			"Hosts:       1\n"+
			"Size:        1\n")
		assert.Equal(t, stderr, "")
	},

	"json output": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "info", "-o", "json", "10.0.0.64/26")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, `{
  "network": "10.0.0.64/26",
  "netmask": "255.255.255.192",
  "wildcard": "0.0.0.63",
  "broadcast": "10.0.0.127",
  "first_host": "10.0.0.65",
  "last_host": "10.0.0.126",
  "hosts": 62,
  "size": 64
}
`)
		assert.Equal(t, stderr, "")
	},

	"yaml output": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "info", "-o", "yaml", "10.0.0.64/26")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, `network: 10.0.0.64/26
netmask: 255.255.255.192
wildcard: 0.0.0.63
broadcast: 10.0.0.127
first_host: 10.0.0.65
last_host: 10.0.0.126
hosts: 62
size: 64
`)
		assert.Equal(t, stderr, "")
	},

	"expect at least one network": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "info")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "Expected at least one network")
	},

	"report networks that are not in CIDR notation": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "info", "10.0.0.0")
		assert.Equal(t, exitCode, 1)
		assert.Equal(t, stdout, "")
		assert.Equal(t, stderr, "ERR: vlsm info: malformed network: \"10.0.0.0\": expected CIDR notation like 192.168.1.0/24\n")
	},

	"report invalid prefix lengths": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "info", "10.0.0.0/33")
		assert.Equal(t, exitCode, 1)
		assert.Equal(t, stdout, "")
		assert.Equal(t, stderr, "ERR: vlsm info: /33: invalid prefix length: must be between 0 and 32\n")
	},

	"passing an unsupported flag to the command causes an error": func(t *testing.T) {
		_, _, exitCode := run(t, "info", "-_")
		assert.Equal(t, exitCode, 2)
	},
}
