package decoder

// Register indices, fixed by the architecture this simulator targets.
const (
	RegZero = 0
	RegAt   = 1
	RegV0   = 2
	RegV1   = 3
	RegA0   = 4
	RegA1   = 5
	RegA2   = 6
	RegA3   = 7
	RegT0   = 8
	RegT1   = 9
	RegT2   = 10
	RegT3   = 11
	RegT4   = 12
	RegT5   = 13
	RegT6   = 14
	RegT7   = 15
	RegS0   = 16
	RegS1   = 17
	RegS2   = 18
	RegS3   = 19
	RegS4   = 20
	RegS5   = 21
	RegS6   = 22
	RegS7   = 23
	RegT8   = 24
	RegT9   = 25
	RegK0   = 26
	RegK1   = 27
	RegGp   = 28
	RegSp   = 29
	RegS8   = 30
	RegRa   = 31

	NumRegisters = 32
)

// RegisterNames gives the canonical symbolic name for each register index,
// in the order a state dump renders them.
var RegisterNames = [NumRegisters]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "s8", "ra",
}

var registerIndexByName = func() map[string]int {
	m := make(map[string]int, NumRegisters)
	for i, name := range RegisterNames {
		m[name] = i
	}
	return m
}()

// LookupRegister resolves a bare register name (without the leading '$')
// to its index. ok is false for an unrecognised name.
func LookupRegister(name string) (index int, ok bool) {
	index, ok = registerIndexByName[name]
	return
}
