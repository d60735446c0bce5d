package catalog

import "github.com/dyuri/ramap/internal/model"

const (
	// ClearID is the id of the clear template. Clear cells are written
	// as NoTemplate.
	ClearID uint16 = 255

	// ObsoleteClearID is the id older tools wrote for clear terrain.
	ObsoleteClearID uint16 = 0

	// NoTemplate is the on-disk sentinel for an empty cell.
	NoTemplate uint16 = 0xFFFF
)

func tpl(id uint16, name, pattern string, theaters model.TheaterMask, family string) *model.TemplateType {
	occ := model.ParseOccupancy(pattern)
	w, h := occ.Size()
	mask := make([]bool, w*h)
	for y, row := range occ {
		for x, set := range row {
			mask[y*w+x] = set
		}
	}
	return &model.TemplateType{
		ID:       id,
		Name:     name,
		Width:    w,
		Height:   h,
		Theaters: theaters,
		Mask:     mask,
		Family:   family,
	}
}

func random(id uint16, name string, icons int, theaters model.TheaterMask, flags model.TemplateFlag) *model.TemplateType {
	return &model.TemplateType{
		ID:       id,
		Name:     name,
		Width:    1,
		Height:   1,
		Theaters: theaters,
		Flags:    flags | model.TemplateRandom,
		Mask:     make([]bool, icons),
	}
}

func group(id uint16, name string, theaters model.TheaterMask) *model.TemplateType {
	return &model.TemplateType{
		ID:       id,
		Name:     name,
		Width:    1,
		Height:   1,
		Theaters: theaters,
		Flags:    model.TemplateGroup,
		Mask:     []bool{true},
	}
}

func templates() []*model.TemplateType {
	const (
		out = model.Outdoor
		tmp = model.InTemperate
		snw = model.InSnow
		in  = model.InInterior
	)
	return []*model.TemplateType{
		random(ClearID, "CLEAR1", 16, model.AllTheaters, model.TemplateClear),
		random(ObsoleteClearID, "CLEAR0", 16, out, model.TemplateClear),

		tpl(1, "W1", "x", out, ""),
		tpl(2, "W2", "xx/xx", out, ""),

		tpl(3, "SH01", "xxxx/xxxx/x.xx", out, ""),
		tpl(4, "SH02", "xxx/xxx/.xx", out, ""),
		tpl(5, "SH03", "x/x", out, ""),
		tpl(6, "SH04", "xx/xx", out, ""),
		tpl(7, "SH05", "xx/xx", out, ""),
		tpl(32, "SH32", "xxx/xx./x..", out, "shore32"),
		tpl(33, "SH33", "xxx/xxx/x..", out, "shore32"),
		tpl(34, "SH34", "xx./xx./xxx", out, "shore32"),

		tpl(59, "S01", "xx/xx", out, ""),
		tpl(60, "S02", "xx/x.", out, ""),

		tpl(97, "B1", "x", out, ""),
		tpl(98, "B2", "xx", out, ""),
		tpl(99, "B3", "xxx", out, ""),

		tpl(112, "P01", "xxxx/xxxx/xxxx/xxxx", out, ""),
		tpl(113, "P02", "xxxx/xxxx/xxxx/xxxx", out, ""),

		tpl(117, "RV01", "xxxxx/xxxxx/xxxxx/xxxxx", out, ""),
		tpl(118, "RV02", "xxxx/xxxx/xxxx", out, ""),

		tpl(135, "FORD1", "xxx/xxx/xxx", out, ""),
		tpl(136, "FALLS1", "xxx/xxx/xxx", out, ""),

		tpl(173, "D01", "xx/xx/xx", out, ""),
		tpl(174, "D02", "xx/xx/xx", out, ""),
		tpl(175, "D03", "x/x", out, ""),
		tpl(176, "D04", "xx/x.", out, ""),

		tpl(227, "RC01", "xx/xx", out, ""),
		tpl(228, "RC02", "xx/xx", out, ""),

		tpl(235, "BR1A", "xxx./xxxx/.xxx", out, "bridge1"),
		tpl(236, "BR1B", "xxx./xxxx/.xx.", out, "bridge1"),
		tpl(237, "BR1C", "xx../xxxx/.xxx", out, "bridge1"),
		tpl(238, "BR2A", "xxxxx/xxxxx/xxxx./.xxx.", out, "bridge2"),
		tpl(239, "BR2B", "xxxxx/xxxxx/.xxx./.xxx.", out, "bridge2"),

		tpl(400, "ICE01", "xx/xx", snw, ""),
		tpl(401, "ICE02", "x./xx", snw, ""),
		tpl(402, "ICE03", "xx", snw, ""),

		tpl(410, "DOCK01", "xxx/xxx", tmp, ""),

		random(253, "FLOR0001", 16, in, 0),
		tpl(254, "ARRO0001", "x", in, ""),
		tpl(256, "WALL0001", "xx/xx", in, ""),
		tpl(257, "WALL0002", "xx/xx", in, ""),
		tpl(258, "WALL0003", "x/x", in, ""),
		tpl(268, "XTRA0001", "xxx/x.x", in, ""),

		group(0xFF00, "GRPSHORE", out),
		group(0xFF01, "GRPBOULDERS", out),
	}
}
