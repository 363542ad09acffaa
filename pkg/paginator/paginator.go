package paginator

import "strconv"

// Page 一页的元信息
type Page struct {
	Number   int   `json:"number"`
	Size     int   `json:"size"`
	NumPages int   `json:"num_pages"`
	Total    int64 `json:"total"`
}

// HasNext 是否还有下一页
func (p Page) HasNext() bool { return p.Number < p.NumPages }

// HasPrev 是否有上一页
func (p Page) HasPrev() bool { return p.Number > 1 }

// Offset 当前页的行偏移
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// NumPages 按总数和页大小算页数；空集也视为 1 页
func NumPages(total int64, size int) int {
	if size <= 0 {
		size = 1
	}
	n := int((total + int64(size) - 1) / int64(size))
	if n < 1 {
		n = 1
	}
	return n
}

// Clamp 把请求页码收敛到合法区间：
// 非法或 <1 → 第 1 页，超过末页 → 末页。越界不报错。
func Clamp(requested string, total int64, size int) Page {
	num := 1
	if n, err := strconv.Atoi(requested); err == nil {
		num = n
	}
	pages := NumPages(total, size)
	if num < 1 {
		num = 1
	}
	if num > pages {
		num = pages
	}
	return Page{Number: num, Size: size, NumPages: pages, Total: total}
}
