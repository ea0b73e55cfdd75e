package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type entry struct {
	key string
	az  string
	en  string
	ru  string
}

var entries = []entry{
	{"error.internal", "Daxili server xətası", "Internal server error", "Внутренняя ошибка сервера"},
	{"error.unauthorized", "Avtorizasiya tələb olunur", "Authentication required", "Требуется авторизация"},
	{"error.forbidden", "Bu əməliyyat üçün admin icazəsi tələb olunur", "Admin privileges required", "Требуются права администратора"},
	{"error.invalid_request", "Yanlış sorğu: %s", "Invalid request: %s", "Некорректный запрос: %s"},
	{"error.conflict", "Məlumat artıq mövcuddur və ya istifadə olunur", "Record already exists or is in use", "Запись уже существует или используется"},
	{"error.not_found", "Tapılmadı", "Not found", "Не найдено"},
	{"error.pagination", "skip və limit mənfi ola bilməz", "skip and limit must not be negative", "skip и limit не могут быть отрицательными"},

	{"category.not_found", "Kateqoriya tapılmadı (id: %d)", "Category not found (id: %d)", "Категория не найдена (id: %d)"},
	{"category.parent_not_found", "Ana kateqoriya tapılmadı (id: %d)", "Parent category not found (id: %d)", "Родительская категория не найдена (id: %d)"},
	{"category.subcategory_not_found", "Alt kateqoriya tapılmadı (id: %d)", "Subcategory not found (id: %d)", "Подкатегория не найдена (id: %d)"},
	{"category.slug_exists", "Bu slug artıq mövcuddur: %s", "Slug already exists: %s", "Такой slug уже существует: %s"},
	{"category.slug_invalid", "Yanlış slug: %s", "Invalid slug: %s", "Некорректный slug: %s"},
	{"category.self_parent", "Kateqoriya özünün ana kateqoriyası ola bilməz (id: %d)", "Category cannot be its own parent (id: %d)", "Категория не может быть родителем самой себя (id: %d)"},
	{"category.has_children", "Kateqoriyanın alt kateqoriyaları var, əvvəlcə onları silin (id: %d)", "Category has subcategories, delete them first (id: %d)", "У категории есть подкатегории, сначала удалите их (id: %d)"},
	{"category.has_products", "Kateqoriyada məhsullar var, silinə bilməz (id: %d)", "Category has products and cannot be deleted (id: %d)", "В категории есть товары, удаление невозможно (id: %d)"},
	{"category.cannot_nest", "Alt kateqoriyaları olan kateqoriya başqa kateqoriyaya bağlana bilməz (id: %d)", "A category with subcategories cannot be nested (id: %d)", "Категорию с подкатегориями нельзя вложить (id: %d)"},
	{"category.parent_field", "Ana kateqoriya üçün parent_id göndərilə bilməz", "parent_id is not allowed for a parent category", "parent_id недопустим для родительской категории"},
	{"category.parent_required", "Alt kateqoriya üçün parent_id tələb olunur", "parent_id is required for a subcategory", "Для подкатегории требуется parent_id"},

	{"brand.not_found", "Brend tapılmadı (id: %d)", "Brand not found (id: %d)", "Бренд не найден (id: %d)"},
	{"brand.name_exists", "Bu adda brend artıq mövcuddur: %s", "Brand already exists: %s", "Бренд уже существует: %s"},
	{"brand.has_products", "Brendin məhsulları var, silinə bilməz (id: %d)", "Brand has products and cannot be deleted (id: %d)", "У бренда есть товары, удаление невозможно (id: %d)"},

	{"product.not_found", "Məhsul tapılmadı (id: %d)", "Product not found (id: %d)", "Товар не найден (id: %d)"},
	{"product.invalid_price", "Qiymət 0-dan böyük olmalıdır", "Price must be greater than 0", "Цена должна быть больше 0"},
	{"product.invalid_discount", "Endirimli qiymət mənfi ola bilməz və əsas qiymətdən kiçik olmalıdır", "Discount price must be non-negative and lower than the price", "Цена со скидкой должна быть неотрицательной и меньше цены"},
	{"product.invalid_stock", "Stok mənfi ola bilməz", "Stock must not be negative", "Остаток не может быть отрицательным"},
	{"product.image_not_attached", "Şəkil bu məhsula aid deyil: %s", "Image is not attached to this product: %s", "Изображение не принадлежит этому товару: %s"},
	{"product.in_orders", "Məhsul sifarişlərdə istifadə olunur, silinə bilməz (id: %d)", "Product is referenced by orders and cannot be deleted (id: %d)", "Товар используется в заказах, удаление невозможно (id: %d)"},

	{"order.not_found", "Sifariş tapılmadı (id: %d)", "Order not found (id: %d)", "Заказ не найден (id: %d)"},
	{"order.insufficient_stock", "Kifayət qədər stok yoxdur: %s (id: %d, mövcud: %d, tələb olunan: %d)", "Insufficient stock for %s (id: %d, available: %d, requested: %d)", "Недостаточно товара: %s (id: %d, в наличии: %d, запрошено: %d)"},
	{"order.invalid_status", "Yanlış sifariş statusu: %s", "Invalid order status: %s", "Некорректный статус заказа: %s"},
	{"order.empty", "Sifarişdə ən azı bir məhsul olmalıdır", "Order must contain at least one item", "Заказ должен содержать хотя бы один товар"},
	{"order.invalid_quantity", "Miqdar 1 ilə %d arasında olmalıdır (məhsul id: %d)", "Quantity must be between 1 and %d (product id: %d)", "Количество должно быть от 1 до %d (id товара: %d)"},
	{"order.address_required", "Çatdırılma ünvanı tələb olunur", "Shipping address is required", "Требуется адрес доставки"},

	{"wishlist.exists", "Məhsul artıq istək siyahısındadır (id: %d)", "Product is already in the wishlist (id: %d)", "Товар уже в списке желаний (id: %d)"},
	{"wishlist.not_found", "Məhsul istək siyahısında tapılmadı (id: %d)", "Product is not in the wishlist (id: %d)", "Товара нет в списке желаний (id: %d)"},

	{"media.invalid_type", "Yalnız %s formatları qəbul olunur", "Only %s files are accepted", "Принимаются только файлы %s"},
	{"media.too_large", "Fayl ölçüsü %d MB-dan çox ola bilməz", "File must not exceed %d MB", "Размер файла не должен превышать %d МБ"},
}

func init() {
	for _, e := range entries {
		_ = message.SetString(language.Azerbaijani, e.key, e.az)
		_ = message.SetString(language.English, e.key, e.en)
		_ = message.SetString(language.Russian, e.key, e.ru)
	}
}
