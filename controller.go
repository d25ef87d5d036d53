package miditrack

// MaxController is the largest controller number that is serialized. Numbers
// 120-127 are channel mode messages in MIDI; 127 is the first number dropped
// from the serialized form of a track.
const MaxController = 126

// Some commonly used controller numbers.
const (
	BankSelect   = 0
	Modulation   = 1
	Volume       = 7
	Pan          = 10
	Expression   = 11
	SustainPedal = 64
)

var controllerNames = map[int]string{
	0:   "Bank Select",
	1:   "Modulation Wheel",
	2:   "Breath Controller",
	4:   "Foot Controller",
	5:   "Portamento Time",
	6:   "Data Entry",
	7:   "Channel Volume",
	8:   "Balance",
	10:  "Pan",
	11:  "Expression Controller",
	12:  "Effect Control 1",
	13:  "Effect Control 2",
	16:  "General Purpose Controller 1",
	17:  "General Purpose Controller 2",
	18:  "General Purpose Controller 3",
	19:  "General Purpose Controller 4",
	32:  "Bank Select LSB",
	33:  "Modulation Wheel LSB",
	34:  "Breath Controller LSB",
	36:  "Foot Controller LSB",
	37:  "Portamento Time LSB",
	38:  "Data Entry LSB",
	39:  "Channel Volume LSB",
	40:  "Balance LSB",
	42:  "Pan LSB",
	43:  "Expression Controller LSB",
	44:  "Effect Control 1 LSB",
	45:  "Effect Control 2 LSB",
	64:  "Sustain Pedal",
	65:  "Portamento",
	66:  "Sostenuto",
	67:  "Soft Pedal",
	68:  "Legato Footswitch",
	69:  "Hold 2",
	70:  "Sound Controller 1",
	71:  "Sound Controller 2",
	72:  "Sound Controller 3",
	73:  "Sound Controller 4",
	74:  "Sound Controller 5",
	75:  "Sound Controller 6",
	76:  "Sound Controller 7",
	77:  "Sound Controller 8",
	78:  "Sound Controller 9",
	79:  "Sound Controller 10",
	80:  "General Purpose Controller 5",
	81:  "General Purpose Controller 6",
	82:  "General Purpose Controller 7",
	83:  "General Purpose Controller 8",
	84:  "Portamento Control",
	88:  "High Resolution Velocity Prefix",
	91:  "Effects 1 Depth",
	92:  "Effects 2 Depth",
	93:  "Effects 3 Depth",
	94:  "Effects 4 Depth",
	95:  "Effects 5 Depth",
	96:  "Data Increment",
	97:  "Data Decrement",
	98:  "Non Registered Parameter Number LSB",
	99:  "Non Registered Parameter Number MSB",
	100: "Registered Parameter Number LSB",
	101: "Registered Parameter Number MSB",
	120: "All Sound Off",
	121: "Reset All Controllers",
	122: "Local Control",
	123: "All Notes Off",
	124: "Omni Mode Off",
	125: "Omni Mode On",
	126: "Mono Mode On",
	127: "Poly Mode On",
}

// ControllerName returns the General MIDI name of a controller number, or ""
// if the number has no name.
func ControllerName(number int) string {
	return controllerNames[number]
}
