package config

import (
	"fmt"

	"github.com/johanneslochmann/qtorm/orm"
)

func parseKind(typ string) (orm.Kind, error) {
	switch typ {
	case "string":
		return orm.KindString, nil
	case "int":
		return orm.KindInt, nil
	case "double":
		return orm.KindDouble, nil
	case "datetime":
		return orm.KindDateTime, nil
	default:
		return 0, fmt.Errorf("unknown type %q", typ)
	}
}

// constrained 是所有字段类型都支持的约束
type constrained interface {
	orm.Field
	SetNotNull(notNull bool)
	SetUnique(unique bool)
}

// Models builds one initialized model per declared table, in declaration
// order. Foreign keys may reference any declared table.
func (c *Config) Models() ([]*orm.Model, error) {
	models := make([]*orm.Model, 0, len(c.Tables))
	byName := make(map[string]*orm.Model, len(c.Tables))
	for _, t := range c.Tables {
		m := orm.NewModel(t.Name)
		models = append(models, m)
		byName[t.Name] = m
	}

	for i, t := range c.Tables {
		m := models[i]
		for _, fc := range t.Fields {
			kind, err := parseKind(fc.Type)
			if err != nil {
				return nil, fmt.Errorf("config: table %s: field %s: %w", t.Name, fc.Name, err)
			}
			var f constrained
			switch {
			case fc.References != "":
				if kind != orm.KindInt {
					return nil, fmt.Errorf("config: table %s: field %s: references needs type int", t.Name, fc.Name)
				}
				target, ok := byName[fc.References]
				if !ok {
					return nil, fmt.Errorf("config: table %s: field %s: unknown table %s", t.Name, fc.Name, fc.References)
				}
				f = m.ForeignKey(fc.Name, target)
			case kind == orm.KindString:
				sf := m.StringField(fc.Name)
				sf.SetMaxLength(fc.Size)
				f = sf
			case kind == orm.KindInt:
				f = m.IntField(fc.Name)
			case kind == orm.KindDouble:
				f = m.DoubleField(fc.Name)
			default:
				f = m.DateTimeField(fc.Name)
			}
			f.SetPrimaryKey(fc.PrimaryKey)
			f.SetAutoIncrement(fc.AutoIncrement)
			f.SetNotNull(fc.NotNull)
			f.SetUnique(fc.Unique)
		}
	}

	for _, m := range models {
		if err := m.Init(); err != nil {
			return nil, err
		}
	}
	return models, nil
}
