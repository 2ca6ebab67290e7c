package service

import (
	"hash/fnv"
)

// fakeNames are the fabricated display names shown next to gallery
// matches. They carry no meaning beyond making the demo feel personal.
var fakeNames = []string{
	"Alex P.",
	"Jordan B.",
	"Casey L.",
	"Morgan R.",
	"Riley S.",
	"Taylor K.",
}

// displayName picks a fabricated name for a gallery identifier. The pick
// is a hash of the identifier so the same gallery face always gets the
// same name across requests and restarts.
func displayName(identifier string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identifier))
	return fakeNames[h.Sum32()%uint32(len(fakeNames))]
}
