package driver

// FilterFn is a predicate over registered devices.
type FilterFn func(Device) bool

// FilterDeviceType matches devices of type t.
func FilterDeviceType(t DeviceType) FilterFn {
	return func(d Device) bool {
		return d.Info().DeviceType == t
	}
}

// FilterPosition matches devices facing p.
func FilterPosition(p Position) FilterFn {
	return func(d Device) bool {
		return d.Info().Position == p
	}
}

// FilterClass matches devices with lens arrangement c.
func FilterClass(c Class) FilterFn {
	return func(d Device) bool {
		return d.Info().Class == c
	}
}

// FilterAnd returns a filter that matches when all of filters match.
func FilterAnd(filters ...FilterFn) FilterFn {
	return func(d Device) bool {
		for _, f := range filters {
			if !f(d) {
				return false
			}
		}
		return true
	}
}

// FilterNot negates f.
func FilterNot(f FilterFn) FilterFn {
	return func(d Device) bool {
		return !f(d)
	}
}
