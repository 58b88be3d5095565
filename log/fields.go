package log

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

type FieldType int

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeBool
	FieldTypeString
	FieldTypeHex8
	FieldTypeHex16
	FieldTypeInt
	FieldTypeUint
	FieldTypeError
	FieldTypeDuration
	FieldTypeStringer
	FieldTypeBlob
)

type ZField struct {
	Type FieldType
	Key  string

	// Possible values. Only one of these is populated, depending on Type
	String    string
	Integer   uint64
	Duration  time.Duration
	Error     error
	Interface any
	Boolean   bool
	Blob      []byte
}

func (f *ZField) Value() string {
	switch f.Type {
	case FieldTypeBool:
		if f.Boolean {
			return "true"
		}
		return "false"
	case FieldTypeString:
		return f.String
	case FieldTypeUint:
		return strconv.FormatUint(f.Integer, 10)
	case FieldTypeInt:
		return strconv.FormatInt(int64(f.Integer), 10)
	case FieldTypeHex8:
		return fmt.Sprintf("%02x", uint(f.Integer))
	case FieldTypeHex16:
		return fmt.Sprintf("%04x", uint(f.Integer))
	case FieldTypeError:
		if f.Error == nil {
			return "<nil>"
		}
		return f.Error.Error()
	case FieldTypeDuration:
		return f.Duration.String()
	case FieldTypeStringer:
		return f.Interface.(fmt.Stringer).String()
	case FieldTypeBlob:
		return hex.Dump(f.Blob)
	}
	return ""
}

// EntryZ is an in-flight log line with typed fields. A nil EntryZ is
// valid, all methods are no-ops on it: a line whose module is masked
// out costs nothing beyond the initial check.
type EntryZ struct {
	mod   Module
	lvl   Level
	msg   string
	zfbuf [16]ZField
	zfidx int
}

func NewEntryZ() *EntryZ {
	return &EntryZ{}
}

func (e *EntryZ) addField(f ZField) *EntryZ {
	if e == nil {
		return nil
	}
	if e.zfidx < len(e.zfbuf) {
		e.zfbuf[e.zfidx] = f
		e.zfidx++
	}
	return e
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	return e.addField(ZField{Type: FieldTypeBool, Key: key, Boolean: val})
}

func (e *EntryZ) String(key, val string) *EntryZ {
	return e.addField(ZField{Type: FieldTypeString, Key: key, String: val})
}

func (e *EntryZ) Int(key string, val int) *EntryZ {
	return e.addField(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Uint(key string, val uint) *EntryZ {
	return e.addField(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return e.addField(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return e.addField(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	return e.addField(ZField{Type: FieldTypeError, Key: key, Error: err})
}

func (e *EntryZ) Duration(key string, d time.Duration) *EntryZ {
	return e.addField(ZField{Type: FieldTypeDuration, Key: key, Duration: d})
}

func (e *EntryZ) Stringer(key string, val fmt.Stringer) *EntryZ {
	return e.addField(ZField{Type: FieldTypeStringer, Key: key, Interface: val})
}

func (e *EntryZ) Blob(key string, val []byte) *EntryZ {
	return e.addField(ZField{Type: FieldTypeBlob, Key: key, Blob: val})
}

// End emits the line and invalidates the entry.
func (e *EntryZ) End() {
	if e == nil {
		return
	}
	for _, c := range contexts {
		c.AddLogContext(e)
	}

	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = modNames[e.mod]
	for i := range e.zfbuf[:e.zfidx] {
		fields[e.zfbuf[i].Key] = e.zfbuf[i].Value()
	}

	entry := logrus.StandardLogger().WithFields(fields)
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case PanicLevel:
		entry.Panic(e.msg)
	}
}
